package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"

	CategoryTechnician = "TEKNISI"
	CategoryBackOffice = "BACK_OFFICE"

	PatternNonShift   = "non-shift"
	PatternTwoShift   = "2-shift"
	PatternThreeShift = "3-shift"
	PatternBackOffice = "back-office"
	PatternTravelling = "travelling"
	PatternStandby    = "standby"
)

type Employee struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NIK string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_employees_nik"`

	FullName string `gorm:"type:varchar(150);not null"`
	Email    string `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	Role     string `gorm:"type:varchar(20);not null;default:'employee'"`

	Category    string `gorm:"type:varchar(20);not null;default:'TEKNISI'"`
	WorkPattern string `gorm:"type:varchar(20);not null;default:'non-shift'"`

	JoinDate      time.Time  `gorm:"type:date;not null"`
	PermanentDate *time.Time `gorm:"type:date"`

	// Self-referential: the approving manager for stage-one sign-off.
	ManagerID *uuid.UUID `gorm:"type:uuid;index"`
	Manager   *Employee  `gorm:"foreignKey:ManagerID"`

	PasswordHash string `gorm:"type:text;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
