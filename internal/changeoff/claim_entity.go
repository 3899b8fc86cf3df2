package changeoff

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusSubmitted       = "SUBMITTED"
	StatusManagerApproved = "MANAGER_APPROVED"
	StatusManagerRejected = "MANAGER_REJECTED"
	StatusHRApproved      = "HR_APPROVED"
	StatusHRRejected      = "HR_REJECTED"
)

// ChangeOffClaim holds one claimed work day. Bulk submissions over a date
// range produce one row per day so each day carries its own value and can be
// judged on its own.
type ChangeOffClaim struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	Category    string `gorm:"type:varchar(20);not null"`
	WorkPattern string `gorm:"type:varchar(20);not null"`

	WorkDate  time.Time `gorm:"type:date;not null"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	Hours     float64   `gorm:"not null"`

	Travelling bool `gorm:"not null;default:false"`
	Standby    bool `gorm:"not null;default:false"`

	Classification string  `gorm:"type:varchar(10);not null"`
	DayValue       float64 `gorm:"not null"`

	Description    string  `gorm:"type:text"`
	AttachmentPath *string `gorm:"type:text"`

	Status       string  `gorm:"type:varchar(20);not null;default:'SUBMITTED';index"`
	RejectReason *string `gorm:"type:text"`

	ManagerApproverID *uuid.UUID `gorm:"type:uuid"`
	ManagerActedAt    *time.Time
	HRApproverID      *uuid.UUID `gorm:"type:uuid;column:hr_approver_id"`
	HRActedAt         *time.Time `gorm:"column:hr_acted_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ChangeOffClaim) TableName() string {
	return "change_off_claims"
}
