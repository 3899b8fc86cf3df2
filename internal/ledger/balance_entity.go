package ledger

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance holds the four per-employee buckets. last_year and
// current_year are whole leave days, change_off moves in 0.5 steps,
// sick_no_doc counts usage against the annual cap.
type LeaveBalance struct {
	EmployeeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastYear    int       `gorm:"column:last_year;not null;default:0"`
	CurrentYear int       `gorm:"column:current_year;not null;default:0"`
	ChangeOff   float64   `gorm:"column:change_off;not null;default:0"`
	SickNoDoc   int       `gorm:"column:sick_no_doc;not null;default:0"`

	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
