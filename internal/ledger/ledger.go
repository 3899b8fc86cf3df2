package ledger

import (
	ledgererrors "go-leaveco/internal/ledger/errors"
	"math"
)

// SickNoDocAnnualCap is the yearly limit on sick leave taken without a
// medical certificate.
const SickNoDocAnnualCap = 6

// The mutation functions below are pure: they change only the receiver and
// either fully apply or leave it untouched. The approval services run them
// inside the same transaction as the status update, so a failed debit rolls
// the whole transition back.

// DebitPersonal applies the waterfall deduction for personal/annual leave:
// last_year is exhausted first, the remainder comes from current_year.
func (b *LeaveBalance) DebitPersonal(days int) error {
	if days <= 0 {
		return ledgererrors.ErrNegativeAmount
	}
	if b.LastYear+b.CurrentYear < days {
		return ledgererrors.ErrInsufficientLeaveBalance
	}

	use := days
	if b.LastYear < use {
		use = b.LastYear
	}
	b.LastYear -= use
	b.CurrentYear -= days - use
	return nil
}

// DebitChangeOff draws solely from the change_off bucket.
func (b *LeaveBalance) DebitChangeOff(amount float64) error {
	if amount <= 0 {
		return ledgererrors.ErrNegativeAmount
	}
	if !isHalfDayMultiple(amount) {
		return ledgererrors.ErrInvalidGranularity
	}
	if b.ChangeOff < amount {
		return ledgererrors.ErrInsufficientChangeOff
	}
	b.ChangeOff = round2(b.ChangeOff - amount)
	return nil
}

// UseSickNoDoc does not debit a day pool; it increments the usage counter
// and fails once the annual cap would be exceeded.
func (b *LeaveBalance) UseSickNoDoc(days int) error {
	if days <= 0 {
		return ledgererrors.ErrNegativeAmount
	}
	if b.SickNoDoc+days > SickNoDocAnnualCap {
		return ledgererrors.ErrSickNoDocLimitExceeded
	}
	b.SickNoDoc += days
	return nil
}

// CreditChangeOff adds an approved claim value to the change_off bucket.
func (b *LeaveBalance) CreditChangeOff(amount float64) error {
	if amount <= 0 {
		return ledgererrors.ErrNegativeAmount
	}
	if !isHalfDayMultiple(amount) {
		return ledgererrors.ErrInvalidGranularity
	}
	b.ChangeOff = round2(b.ChangeOff + amount)
	return nil
}

// Sufficient reports whether a debit of the given size would succeed. Used
// for the advisory check at submission time; the authoritative check runs
// at HR approval.
func (b *LeaveBalance) Sufficient(leaveType string, days float64) bool {
	switch leaveType {
	case "CHANGE_OFF":
		return b.ChangeOff >= days
	case "SICK_NO_DOC":
		return float64(b.SickNoDoc)+days <= SickNoDocAnnualCap
	default:
		return float64(b.LastYear+b.CurrentYear) >= days
	}
}

func isHalfDayMultiple(v float64) bool {
	scaled := v * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
