package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePersonal  = "PERSONAL"
	TypeChangeOff = "CHANGE_OFF"
	TypeSickNoDoc = "SICK_NO_DOC"
)

const (
	StatusSubmitted       = "SUBMITTED"
	StatusManagerApproved = "MANAGER_APPROVED"
	StatusManagerRejected = "MANAGER_REJECTED"
	StatusHRApproved      = "HR_APPROVED"
	StatusHRRejected      = "HR_REJECTED"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`

	// HalfDay shaves 0.5 off the final working day; change off leave only.
	HalfDay   bool    `gorm:"not null;default:false"`
	TotalDays float64 `gorm:"not null"`

	Reason string `gorm:"type:text;not null"`

	Status       string  `gorm:"type:varchar(20);not null;default:'SUBMITTED';index"`
	RejectReason *string `gorm:"type:text"`

	ManagerApproverID *uuid.UUID `gorm:"type:uuid"`
	ManagerActedAt    *time.Time
	HRApproverID      *uuid.UUID `gorm:"type:uuid;column:hr_approver_id"`
	HRActedAt         *time.Time `gorm:"column:hr_acted_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
