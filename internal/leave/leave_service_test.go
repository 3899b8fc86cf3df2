package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-leaveco/internal/calendar"
	"go-leaveco/internal/employee"
	"go-leaveco/internal/ledger"
	ledgererrors "go-leaveco/internal/ledger/errors"
	leaveerrors "go-leaveco/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepo struct {
	created []LeaveRequest
	updated []LeaveRequest

	findByIDFn func(ctx context.Context, id string) (*LeaveRequest, error)
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeLeaveRepo) Create(ctx context.Context, req *LeaveRequest) error {
	f.created = append(f.created, *req)
	return nil
}
func (f *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeLeaveRepo) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) FindSubmittedForManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) FindManagerApproved(ctx context.Context) ([]LeaveRequest, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) Update(ctx context.Context, req *LeaveRequest) error {
	f.updated = append(f.updated, *req)
	return nil
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository        { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAccruableIDs(ctx context.Context, permanentBefore time.Time) ([]string, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeBalanceRepo struct {
	balance *ledger.LeaveBalance
	updated []ledger.LeaveBalance
}

func (f *fakeBalanceRepo) WithTx(tx *sql.Tx) ledger.Repository { return f }
func (f *fakeBalanceRepo) Create(ctx context.Context, b *ledger.LeaveBalance) error { return nil }
func (f *fakeBalanceRepo) FindByEmployee(ctx context.Context, employeeID string) (*ledger.LeaveBalance, error) {
	copied := *f.balance
	return &copied, nil
}
func (f *fakeBalanceRepo) Update(ctx context.Context, b *ledger.LeaveBalance) error {
	f.updated = append(f.updated, *b)
	return nil
}
func (f *fakeBalanceRepo) Delete(ctx context.Context, employeeID string) error { return nil }
func (f *fakeBalanceRepo) AccrueCurrentYear(ctx context.Context, employeeIDs []string, days int) (int64, error) {
	return 0, nil
}
func (f *fakeBalanceRepo) RolloverYear(ctx context.Context) (int64, error) { return 0, nil }

type fakeCalendar struct {
	workingDaysFn func(ctx context.Context, start, end time.Time) (int, error)
}

func (f *fakeCalendar) Classify(ctx context.Context, date time.Time) (calendar.DayType, error) {
	return calendar.DayTypeWeekday, nil
}
func (f *fakeCalendar) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	return f.workingDaysFn(ctx, start, end)
}
func (f *fakeCalendar) AddHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	return calendar.HolidayResponse{}, nil
}
func (f *fakeCalendar) ListHolidays(ctx context.Context) ([]calendar.HolidayResponse, error) {
	return nil, nil
}
func (f *fakeCalendar) UpdateHoliday(ctx context.Context, id string, req calendar.UpdateHolidayRequest) (calendar.HolidayResponse, error) {
	return calendar.HolidayResponse{}, nil
}
func (f *fakeCalendar) DeleteHoliday(ctx context.Context, id string) error { return nil }

func newTestEmployee(id, managerID uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:          id,
		NIK:         "EMP-001",
		FullName:    "Budi Santoso",
		Email:       "budi@example.com",
		Role:        employee.RoleEmployee,
		Category:    employee.CategoryTechnician,
		WorkPattern: employee.PatternTwoShift,
		ManagerID:   &managerID,
	}
}

func TestSubmit_SoftCheckWarnsButNeverBlocks(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	managerID := uuid.New()
	ctx := context.Background()

	leaveRepo := &fakeLeaveRepo{}
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return newTestEmployee(empID, managerID), nil
	}}
	balanceRepo := &fakeBalanceRepo{balance: &ledger.LeaveBalance{EmployeeID: empID, ChangeOff: 1.0}}
	cal := &fakeCalendar{workingDaysFn: func(ctx context.Context, start, end time.Time) (int, error) {
		return 2, nil
	}}

	svc := NewService(db, leaveRepo, empRepo, balanceRepo, cal, nil)

	resp, err := svc.Submit(ctx, empID.String(), CreateLeaveRequest{
		LeaveType: TypeChangeOff,
		StartDate: "2025-09-01",
		EndDate:   "2025-09-02",
		HalfDay:   true,
		Reason:    "ganti hari kerja lembur",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusSubmitted, resp.Status)
	assert.Equal(t, 1.5, resp.TotalDays)
	assert.NotEmpty(t, resp.BalanceWarning)
	assert.Len(t, leaveRepo.created, 1)
}

func TestSubmit_HalfDayOnlyForChangeOff(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return newTestEmployee(empID, uuid.New()), nil
	}}
	svc := NewService(db, &fakeLeaveRepo{}, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}}, &fakeCalendar{}, nil)

	_, err := svc.Submit(context.Background(), empID.String(), CreateLeaveRequest{
		LeaveType: TypePersonal,
		StartDate: "2025-09-01",
		EndDate:   "2025-09-01",
		HalfDay:   true,
		Reason:    "urusan keluarga",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrHalfDayNotChangeOff)
}

func TestSubmit_NoWorkingDays(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return newTestEmployee(empID, uuid.New()), nil
	}}
	cal := &fakeCalendar{workingDaysFn: func(ctx context.Context, start, end time.Time) (int, error) {
		return 0, nil
	}}
	svc := NewService(db, &fakeLeaveRepo{}, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}}, cal, nil)

	_, err := svc.Submit(context.Background(), empID.String(), CreateLeaveRequest{
		LeaveType: TypePersonal,
		StartDate: "2025-09-06",
		EndDate:   "2025-09-07",
		Reason:    "weekend saja",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrNoWorkingDays)
}

func TestManagerApprove(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	managerID := uuid.New()
	requestID := uuid.New()
	ctx := context.Background()

	current := &LeaveRequest{
		ID:         requestID,
		EmployeeID: empID,
		LeaveType:  TypePersonal,
		TotalDays:  2,
		Status:     StatusSubmitted,
	}
	leaveRepo := &fakeLeaveRepo{findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
		copied := *current
		return &copied, nil
	}}
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return newTestEmployee(empID, managerID), nil
	}}

	svc := NewService(db, leaveRepo, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}}, &fakeCalendar{}, nil)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.ManagerApprove(ctx, managerID.String(), requestID.String())
		assert.NoError(t, err)
		assert.Equal(t, StatusManagerApproved, resp.Status)
		assert.Len(t, leaveRepo.updated, 1)
	})

	t.Run("negative not the owning manager", func(t *testing.T) {
		_, err := svc.ManagerApprove(ctx, uuid.New().String(), requestID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotDirectReport)
	})

	t.Run("negative reject without reason", func(t *testing.T) {
		_, err := svc.ManagerReject(ctx, managerID.String(), requestID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrRejectReasonRequired)
	})
}

func TestHRApprove_PersonalWaterfall(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	hrID := uuid.New()
	requestID := uuid.New()
	ctx := context.Background()

	leaveRepo := &fakeLeaveRepo{findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
		return &LeaveRequest{
			ID:         requestID,
			EmployeeID: empID,
			LeaveType:  TypePersonal,
			TotalDays:  4,
			Status:     StatusManagerApproved,
		}, nil
	}}
	balanceRepo := &fakeBalanceRepo{balance: &ledger.LeaveBalance{EmployeeID: empID, LastYear: 3, CurrentYear: 2}}

	svc := NewService(db, leaveRepo, &fakeEmployeeRepo{}, balanceRepo, &fakeCalendar{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.HRApprove(ctx, hrID.String(), requestID.String())

	assert.NoError(t, err)
	assert.Equal(t, StatusHRApproved, resp.Status)
	assert.Len(t, balanceRepo.updated, 1)
	assert.Equal(t, 0, balanceRepo.updated[0].LastYear)
	assert.Equal(t, 1, balanceRepo.updated[0].CurrentYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHRApprove_InsufficientChangeOffRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	requestID := uuid.New()
	ctx := context.Background()

	leaveRepo := &fakeLeaveRepo{findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
		return &LeaveRequest{
			ID:         requestID,
			EmployeeID: empID,
			LeaveType:  TypeChangeOff,
			TotalDays:  1.5,
			Status:     StatusManagerApproved,
		}, nil
	}}
	balanceRepo := &fakeBalanceRepo{balance: &ledger.LeaveBalance{EmployeeID: empID, ChangeOff: 1.0}}

	svc := NewService(db, leaveRepo, &fakeEmployeeRepo{}, balanceRepo, &fakeCalendar{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.HRApprove(ctx, uuid.New().String(), requestID.String())

	assert.ErrorIs(t, err, ledgererrors.ErrInsufficientChangeOff)
	// Tidak ada mutasi: status tetap MANAGER_APPROVED, saldo utuh.
	assert.Empty(t, balanceRepo.updated)
	assert.Empty(t, leaveRepo.updated)
	assert.Equal(t, 1.0, balanceRepo.balance.ChangeOff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHRApprove_CannotSkipManagerStage(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	requestID := uuid.New()
	leaveRepo := &fakeLeaveRepo{findByIDFn: func(ctx context.Context, id string) (*LeaveRequest, error) {
		return &LeaveRequest{ID: requestID, Status: StatusSubmitted}, nil
	}}

	svc := NewService(db, leaveRepo, &fakeEmployeeRepo{}, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}}, &fakeCalendar{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.HRApprove(context.Background(), uuid.New().String(), requestID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAllowedTransition(t *testing.T) {
	assert.True(t, isAllowedTransition(StatusSubmitted, StatusManagerApproved))
	assert.True(t, isAllowedTransition(StatusSubmitted, StatusManagerRejected))
	assert.True(t, isAllowedTransition(StatusManagerApproved, StatusHRApproved))
	assert.True(t, isAllowedTransition(StatusManagerApproved, StatusHRRejected))

	// No skips, no backward moves, no transitions out of terminal states.
	assert.False(t, isAllowedTransition(StatusSubmitted, StatusHRApproved))
	assert.False(t, isAllowedTransition(StatusSubmitted, StatusHRRejected))
	assert.False(t, isAllowedTransition(StatusManagerApproved, StatusSubmitted))
	assert.False(t, isAllowedTransition(StatusHRApproved, StatusHRRejected))
	assert.False(t, isAllowedTransition(StatusManagerRejected, StatusManagerApproved))
}
