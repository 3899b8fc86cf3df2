package ledger

import (
	"testing"

	ledgererrors "go-leaveco/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDebitPersonal_Waterfall(t *testing.T) {
	b := LeaveBalance{EmployeeID: uuid.New(), LastYear: 3, CurrentYear: 2}

	err := b.DebitPersonal(4)
	assert.NoError(t, err)
	assert.Equal(t, 0, b.LastYear)
	assert.Equal(t, 1, b.CurrentYear)
}

func TestDebitPersonal_ExhaustsLastYearFirst(t *testing.T) {
	b := LeaveBalance{LastYear: 5, CurrentYear: 5}

	assert.NoError(t, b.DebitPersonal(2))
	assert.Equal(t, 3, b.LastYear)
	assert.Equal(t, 5, b.CurrentYear)
}

func TestDebitPersonal_Insufficient(t *testing.T) {
	b := LeaveBalance{LastYear: 1, CurrentYear: 1}

	err := b.DebitPersonal(3)
	assert.ErrorIs(t, err, ledgererrors.ErrInsufficientLeaveBalance)
	// Saldo tidak berubah.
	assert.Equal(t, 1, b.LastYear)
	assert.Equal(t, 1, b.CurrentYear)
}

func TestDebitPersonal_RejectsNonPositive(t *testing.T) {
	b := LeaveBalance{LastYear: 3}
	assert.ErrorIs(t, b.DebitPersonal(0), ledgererrors.ErrNegativeAmount)
	assert.ErrorIs(t, b.DebitPersonal(-1), ledgererrors.ErrNegativeAmount)
}

func TestDebitChangeOff(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b := LeaveBalance{ChangeOff: 2.5}
		assert.NoError(t, b.DebitChangeOff(1.5))
		assert.Equal(t, 1.0, b.ChangeOff)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		b := LeaveBalance{ChangeOff: 1.0}
		err := b.DebitChangeOff(1.5)
		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientChangeOff)
		assert.Equal(t, 1.0, b.ChangeOff)
	})

	t.Run("negative not a half day multiple", func(t *testing.T) {
		b := LeaveBalance{ChangeOff: 2.0}
		assert.ErrorIs(t, b.DebitChangeOff(0.3), ledgererrors.ErrInvalidGranularity)
	})
}

func TestUseSickNoDoc_Cap(t *testing.T) {
	b := LeaveBalance{SickNoDoc: 5}

	assert.NoError(t, b.UseSickNoDoc(1))
	assert.Equal(t, 6, b.SickNoDoc)

	err := b.UseSickNoDoc(1)
	assert.ErrorIs(t, err, ledgererrors.ErrSickNoDocLimitExceeded)
	assert.Equal(t, 6, b.SickNoDoc)
}

func TestCreditChangeOff(t *testing.T) {
	b := LeaveBalance{ChangeOff: 1.0}

	assert.NoError(t, b.CreditChangeOff(1.5))
	assert.Equal(t, 2.5, b.ChangeOff)

	assert.ErrorIs(t, b.CreditChangeOff(0), ledgererrors.ErrNegativeAmount)
	assert.ErrorIs(t, b.CreditChangeOff(0.7), ledgererrors.ErrInvalidGranularity)
}

func TestBucketsNeverNegative(t *testing.T) {
	b := LeaveBalance{LastYear: 2, CurrentYear: 1, ChangeOff: 0.5, SickNoDoc: 4}

	_ = b.DebitPersonal(3)
	_ = b.DebitPersonal(5)
	_ = b.DebitChangeOff(0.5)
	_ = b.DebitChangeOff(1.0)
	_ = b.UseSickNoDoc(2)
	_ = b.UseSickNoDoc(3)

	assert.GreaterOrEqual(t, b.LastYear, 0)
	assert.GreaterOrEqual(t, b.CurrentYear, 0)
	assert.GreaterOrEqual(t, b.ChangeOff, 0.0)
	assert.GreaterOrEqual(t, b.SickNoDoc, 0)
	assert.LessOrEqual(t, b.SickNoDoc, SickNoDocAnnualCap)
}

func TestSufficient(t *testing.T) {
	b := LeaveBalance{LastYear: 2, CurrentYear: 1, ChangeOff: 1.0, SickNoDoc: 5}

	assert.True(t, b.Sufficient("PERSONAL", 3))
	assert.False(t, b.Sufficient("PERSONAL", 4))
	assert.True(t, b.Sufficient("CHANGE_OFF", 1.0))
	assert.False(t, b.Sufficient("CHANGE_OFF", 1.5))
	assert.True(t, b.Sufficient("SICK_NO_DOC", 1))
	assert.False(t, b.Sufficient("SICK_NO_DOC", 2))
}
