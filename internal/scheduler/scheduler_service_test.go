package scheduler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-leaveco/internal/employee"
	"go-leaveco/internal/ledger"
	schedulererrors "go-leaveco/internal/scheduler/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeJobRepo struct {
	created []JobExecution

	createFn func(ctx context.Context, exec *JobExecution) error
}

func (f *fakeJobRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeJobRepo) Create(ctx context.Context, exec *JobExecution) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, exec); err != nil {
			return err
		}
	}
	f.created = append(f.created, *exec)
	return nil
}
func (f *fakeJobRepo) FindAll(ctx context.Context) ([]JobExecution, error) {
	return f.created, nil
}

type fakeEmployeeRepo struct {
	accruableIDs []string
	cutoffs      []time.Time
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository                  { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAccruableIDs(ctx context.Context, permanentBefore time.Time) ([]string, error) {
	f.cutoffs = append(f.cutoffs, permanentBefore)
	return f.accruableIDs, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeBalanceRepo struct {
	accruals  [][]string
	rollovers int
}

func (f *fakeBalanceRepo) WithTx(tx *sql.Tx) ledger.Repository                      { return f }
func (f *fakeBalanceRepo) Create(ctx context.Context, b *ledger.LeaveBalance) error { return nil }
func (f *fakeBalanceRepo) FindByEmployee(ctx context.Context, employeeID string) (*ledger.LeaveBalance, error) {
	return nil, nil
}
func (f *fakeBalanceRepo) Update(ctx context.Context, b *ledger.LeaveBalance) error { return nil }
func (f *fakeBalanceRepo) Delete(ctx context.Context, employeeID string) error      { return nil }
func (f *fakeBalanceRepo) AccrueCurrentYear(ctx context.Context, employeeIDs []string, days int) (int64, error) {
	f.accruals = append(f.accruals, employeeIDs)
	return int64(len(employeeIDs)), nil
}
func (f *fakeBalanceRepo) RolloverYear(ctx context.Context) (int64, error) {
	f.rollovers++
	return 10, nil
}

func duplicatePeriodErr() error {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_job_executions_period",
		Message:        "duplicate key value violates unique constraint \"uq_job_executions_period\"",
	}
}

func TestRunDue_MonthlyAccrualOnFirstOfMonth(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	jobRepo := &fakeJobRepo{}
	empRepo := &fakeEmployeeRepo{accruableIDs: []string{uuid.NewString(), uuid.NewString()}}
	balanceRepo := &fakeBalanceRepo{}
	svc := NewService(db, jobRepo, empRepo, balanceRepo)

	today := time.Date(2025, time.September, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.RunDue(context.Background(), today)

	assert.NoError(t, err)
	assert.Len(t, jobRepo.created, 1)
	assert.Equal(t, JobMonthlyAccrual, jobRepo.created[0].JobName)
	assert.Equal(t, "2025-09", jobRepo.created[0].PeriodKey)
	assert.Len(t, balanceRepo.accruals, 1)
	assert.Len(t, balanceRepo.accruals[0], 2)
	// Probation cutoff: hanya yang permanen minimal sebulan.
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), empRepo.cutoffs[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDue_NoJobOnOrdinaryDay(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	jobRepo := &fakeJobRepo{}
	balanceRepo := &fakeBalanceRepo{}
	svc := NewService(db, jobRepo, &fakeEmployeeRepo{}, balanceRepo)

	err := svc.RunDue(context.Background(), time.Date(2025, time.September, 15, 8, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Empty(t, jobRepo.created)
	assert.Empty(t, balanceRepo.accruals)
	assert.Zero(t, balanceRepo.rollovers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDue_MonthlyAccrualSkipsDuplicatePeriod(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	jobRepo := &fakeJobRepo{createFn: func(ctx context.Context, exec *JobExecution) error {
		return duplicatePeriodErr()
	}}
	balanceRepo := &fakeBalanceRepo{}
	svc := NewService(db, jobRepo, &fakeEmployeeRepo{}, balanceRepo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.RunDue(context.Background(), time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))

	// Restart pada hari yang sama: bukan error, dan saldo tidak ditambah dua kali.
	assert.NoError(t, err)
	assert.Empty(t, balanceRepo.accruals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDue_AnnualRolloverOnJuneThirtieth(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	jobRepo := &fakeJobRepo{}
	balanceRepo := &fakeBalanceRepo{}
	svc := NewService(db, jobRepo, &fakeEmployeeRepo{}, balanceRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.RunDue(context.Background(), time.Date(2026, time.June, 30, 6, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, 1, balanceRepo.rollovers)
	assert.Len(t, jobRepo.created, 1)
	assert.Equal(t, JobAnnualRollover, jobRepo.created[0].JobName)
	assert.Equal(t, "2026", jobRepo.created[0].PeriodKey)
	assert.Nil(t, jobRepo.created[0].ExecutedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDue_AnnualRolloverDuplicateIsSilent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	jobRepo := &fakeJobRepo{createFn: func(ctx context.Context, exec *JobExecution) error {
		return duplicatePeriodErr()
	}}
	balanceRepo := &fakeBalanceRepo{}
	svc := NewService(db, jobRepo, &fakeEmployeeRepo{}, balanceRepo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.RunDue(context.Background(), time.Date(2026, time.June, 30, 6, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Zero(t, balanceRepo.rollovers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTriggerRollover(t *testing.T) {
	t.Run("success records the actor", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		jobRepo := &fakeJobRepo{}
		balanceRepo := &fakeBalanceRepo{}
		svc := NewService(db, jobRepo, &fakeEmployeeRepo{}, balanceRepo)

		actor := uuid.New()
		mock.ExpectBegin()
		mock.ExpectCommit()
		err := svc.TriggerRollover(context.Background(), actor.String())

		assert.NoError(t, err)
		assert.Equal(t, 1, balanceRepo.rollovers)
		assert.NotNil(t, jobRepo.created[0].ExecutedBy)
		assert.Equal(t, actor, *jobRepo.created[0].ExecutedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative duplicate period surfaces", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		jobRepo := &fakeJobRepo{createFn: func(ctx context.Context, exec *JobExecution) error {
			return duplicatePeriodErr()
		}}
		balanceRepo := &fakeBalanceRepo{}
		svc := NewService(db, jobRepo, &fakeEmployeeRepo{}, balanceRepo)

		mock.ExpectBegin()
		mock.ExpectRollback()
		err := svc.TriggerRollover(context.Background(), uuid.NewString())

		assert.ErrorIs(t, err, schedulererrors.ErrDuplicateExecution)
		assert.Zero(t, balanceRepo.rollovers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsDuplicateExecution(t *testing.T) {
	assert.True(t, isDuplicateExecution(duplicatePeriodErr()))
	assert.True(t, isDuplicateExecution(assertableErr("duplicate key value violates unique constraint \"uq_job_executions_period\"")))
	assert.False(t, isDuplicateExecution(assertableErr("connection refused")))
	assert.False(t, isDuplicateExecution(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_nik"}))
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
