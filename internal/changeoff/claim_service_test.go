package changeoff

import (
	"context"
	"database/sql"
	"mime/multipart"
	"testing"
	"time"

	"go-leaveco/internal/calendar"
	changeofferrors "go-leaveco/internal/changeoff/errors"
	"go-leaveco/internal/employee"
	"go-leaveco/internal/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeClaimRepo struct {
	batches [][]ChangeOffClaim
	updated []ChangeOffClaim

	findByIDFn func(ctx context.Context, id string) (*ChangeOffClaim, error)
}

func (f *fakeClaimRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeClaimRepo) CreateBatch(ctx context.Context, claims []ChangeOffClaim) error {
	f.batches = append(f.batches, claims)
	return nil
}
func (f *fakeClaimRepo) FindByID(ctx context.Context, id string) (*ChangeOffClaim, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeClaimRepo) FindByEmployee(ctx context.Context, employeeID string) ([]ChangeOffClaim, error) {
	return nil, nil
}
func (f *fakeClaimRepo) FindSubmittedForManager(ctx context.Context, managerID string) ([]ChangeOffClaim, error) {
	return nil, nil
}
func (f *fakeClaimRepo) FindManagerApproved(ctx context.Context) ([]ChangeOffClaim, error) {
	return nil, nil
}
func (f *fakeClaimRepo) Update(ctx context.Context, claim *ChangeOffClaim) error {
	f.updated = append(f.updated, *claim)
	return nil
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository                  { return f }
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

func (f *fakeBalanceRepo) WithTx(tx *sql.Tx) ledger.Repository                      { return f }
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

// weekendCalendar classifies Saturday and Sunday as weekend, everything else
// as weekday.
type weekendCalendar struct{}

func (weekendCalendar) Classify(ctx context.Context, date time.Time) (calendar.DayType, error) {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return calendar.DayTypeWeekend, nil
	}
	return calendar.DayTypeWeekday, nil
}
func (weekendCalendar) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	return 0, nil
}
func (weekendCalendar) AddHoliday(ctx context.Context, req calendar.CreateHolidayRequest) (calendar.HolidayResponse, error) {
	return calendar.HolidayResponse{}, nil
}
func (weekendCalendar) ListHolidays(ctx context.Context) ([]calendar.HolidayResponse, error) {
	return nil, nil
}
func (weekendCalendar) UpdateHoliday(ctx context.Context, id string, req calendar.UpdateHolidayRequest) (calendar.HolidayResponse, error) {
	return calendar.HolidayResponse{}, nil
}
func (weekendCalendar) DeleteHoliday(ctx context.Context, id string) error { return nil }

type fakeStore struct {
	saved   []string
	removed []string
}

func (f *fakeStore) SaveAttachment(employeeID string, file *multipart.FileHeader) (string, error) {
	path := "uploads/change_off/" + employeeID + "/test.pdf"
	f.saved = append(f.saved, path)
	return path, nil
}
func (f *fakeStore) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func newClaimTestService(
	db *sql.DB,
	repo *fakeClaimRepo,
	employees *fakeEmployeeRepo,
	balances *fakeBalanceRepo,
) Service {
	return NewService(db, repo, employees, balances, weekendCalendar{}, &fakeStore{}, nil)
}

func testEmployeeWithPattern(id, managerID uuid.UUID, pattern string) *employee.Employee {
	return &employee.Employee{
		ID:          id,
		NIK:         "EMP-007",
		FullName:    "Siti Rahma",
		Email:       "siti@example.com",
		Role:        employee.RoleEmployee,
		Category:    employee.CategoryTechnician,
		WorkPattern: pattern,
		ManagerID:   &managerID,
	}
}

func TestSubmit_ThreeShiftWeekdayHasNoValue(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return testEmployeeWithPattern(empID, uuid.New(), employee.PatternThreeShift), nil
	}}
	repo := &fakeClaimRepo{}
	svc := newClaimTestService(db, repo, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}})

	// 2025-09-01 jatuh di hari Senin.
	_, err := svc.Submit(context.Background(), empID.String(), SubmitClaimRequest{
		StartDate:   "2025-09-01",
		StartTime:   "07:00",
		EndTime:     "15:00",
		Description: "shift pagi biasa",
	}, nil)

	assert.ErrorIs(t, err, changeofferrors.ErrZeroValueClaim)
	assert.Empty(t, repo.batches)
}

func TestSubmit_RangeSkipsZeroValueDays(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return testEmployeeWithPattern(empID, uuid.New(), employee.PatternThreeShift), nil
	}}
	repo := &fakeClaimRepo{}
	svc := newClaimTestService(db, repo, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}})

	// Sabtu 2025-09-06 s.d. Senin 2025-09-08: Senin bernilai nol untuk
	// pola 3-shift, jadi hanya dua baris yang dibuat.
	resp, err := svc.Submit(context.Background(), empID.String(), SubmitClaimRequest{
		StartDate:   "2025-09-06",
		EndDate:     "2025-09-08",
		StartTime:   "07:00",
		EndTime:     "15:00",
		Description: "kerja akhir pekan",
	}, nil)

	assert.NoError(t, err)
	assert.Len(t, repo.batches, 1)
	assert.Len(t, repo.batches[0], 2)
	assert.Equal(t, 2.0, resp.TotalValue)
	for _, c := range repo.batches[0] {
		assert.Equal(t, 1.0, c.DayValue)
		assert.Equal(t, string(calendar.DayTypeWeekend), c.Classification)
		assert.Equal(t, StatusSubmitted, c.Status)
	}
}

func TestSubmit_TravellingBonusAdditive(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return testEmployeeWithPattern(empID, uuid.New(), employee.PatternTwoShift), nil
	}}
	repo := &fakeClaimRepo{}
	svc := newClaimTestService(db, repo, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}})

	// Sabtu, 2-shift (1.5) plus berangkat dinas sebelum jam 12 (1.0).
	resp, err := svc.Submit(context.Background(), empID.String(), SubmitClaimRequest{
		StartDate:   "2025-09-06",
		StartTime:   "08:00",
		EndTime:     "17:00",
		Travelling:  true,
		Description: "dinas luar kota",
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2.5, resp.TotalValue)
}

func TestSubmit_InvalidDateRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return testEmployeeWithPattern(empID, uuid.New(), employee.PatternTwoShift), nil
	}}
	svc := newClaimTestService(db, &fakeClaimRepo{}, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}})

	_, err := svc.Submit(context.Background(), empID.String(), SubmitClaimRequest{
		StartDate:   "2025-09-08",
		EndDate:     "2025-09-06",
		StartTime:   "08:00",
		EndTime:     "17:00",
		Description: "rentang terbalik",
	}, nil)
	assert.ErrorIs(t, err, changeofferrors.ErrInvalidDateRange)
}

func TestClaimManagerTransition(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	managerID := uuid.New()
	claimID := uuid.New()
	ctx := context.Background()

	repo := &fakeClaimRepo{findByIDFn: func(ctx context.Context, id string) (*ChangeOffClaim, error) {
		return &ChangeOffClaim{
			ID:         claimID,
			EmployeeID: empID,
			DayValue:   1.0,
			Status:     StatusSubmitted,
		}, nil
	}}
	empRepo := &fakeEmployeeRepo{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return testEmployeeWithPattern(empID, managerID, employee.PatternThreeShift), nil
	}}
	svc := newClaimTestService(db, repo, empRepo, &fakeBalanceRepo{balance: &ledger.LeaveBalance{}})

	t.Run("success", func(t *testing.T) {
		resp, err := svc.ManagerApprove(ctx, managerID.String(), claimID.String())
		assert.NoError(t, err)
		assert.Equal(t, StatusManagerApproved, resp.Status)
	})

	t.Run("negative not the owning manager", func(t *testing.T) {
		_, err := svc.ManagerApprove(ctx, uuid.New().String(), claimID.String())
		assert.ErrorIs(t, err, changeofferrors.ErrNotDirectReport)
	})

	t.Run("negative reject without reason", func(t *testing.T) {
		_, err := svc.ManagerReject(ctx, managerID.String(), claimID.String(), "")
		assert.ErrorIs(t, err, changeofferrors.ErrRejectReasonRequired)
	})
}

func TestClaimHRApprove_CreditsLedger(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	empID := uuid.New()
	claimID := uuid.New()

	repo := &fakeClaimRepo{findByIDFn: func(ctx context.Context, id string) (*ChangeOffClaim, error) {
		return &ChangeOffClaim{
			ID:         claimID,
			EmployeeID: empID,
			DayValue:   1.5,
			Status:     StatusManagerApproved,
		}, nil
	}}
	balanceRepo := &fakeBalanceRepo{balance: &ledger.LeaveBalance{EmployeeID: empID, ChangeOff: 1.0}}
	svc := newClaimTestService(db, repo, &fakeEmployeeRepo{}, balanceRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.HRApprove(context.Background(), uuid.New().String(), claimID.String())

	assert.NoError(t, err)
	assert.Equal(t, StatusHRApproved, resp.Status)
	assert.Len(t, balanceRepo.updated, 1)
	assert.Equal(t, 2.5, balanceRepo.updated[0].ChangeOff)
	assert.Len(t, repo.updated, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimHRApprove_CannotSkipManagerStage(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	claimID := uuid.New()
	repo := &fakeClaimRepo{findByIDFn: func(ctx context.Context, id string) (*ChangeOffClaim, error) {
		return &ChangeOffClaim{ID: claimID, Status: StatusSubmitted}, nil
	}}
	balanceRepo := &fakeBalanceRepo{balance: &ledger.LeaveBalance{}}
	svc := newClaimTestService(db, repo, &fakeEmployeeRepo{}, balanceRepo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.HRApprove(context.Background(), uuid.New().String(), claimID.String())

	assert.ErrorIs(t, err, changeofferrors.ErrInvalidTransition)
	assert.Empty(t, balanceRepo.updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
