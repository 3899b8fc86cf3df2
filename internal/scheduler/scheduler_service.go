package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-leaveco/internal/employee"
	"go-leaveco/internal/ledger"
	schedulererrors "go-leaveco/internal/scheduler/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	monthlyPeriodLayout = "2006-01"
	annualPeriodLayout  = "2006"

	// Rollover boundary: June 30. Last-year balances expire here.
	rolloverMonth = time.June
	rolloverDay   = 30
)

//go:generate mockgen -source=scheduler_service.go -destination=mock/scheduler_service_mock.go -package=mock
type Service interface {
	// RunDue fires every job whose calendar condition matches today. Safe to
	// call any number of times; each job is guarded by its execution row.
	RunDue(ctx context.Context, today time.Time) error
	// Start runs RunDue immediately and then once an hour until the context
	// is cancelled.
	Start(ctx context.Context)
	// TriggerRollover is the HR-only manual re-invocation for the year the
	// automatic trigger was missed.
	TriggerRollover(ctx context.Context, actorID string) error
	ListExecutions(ctx context.Context) ([]JobExecutionResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	balances  ledger.Repository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	balances ledger.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("scheduler.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		balances:  balances,
		logger:    l,
	}
}

func (s *service) Start(ctx context.Context) {
	run := func() {
		if err := s.RunDue(ctx, time.Now().UTC()); err != nil {
			s.logger.Error("scheduled run failed", zap.Error(err))
		}
	}

	run()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			run()
		}
	}
}

func (s *service) RunDue(ctx context.Context, today time.Time) error {
	today = today.UTC().Truncate(24 * time.Hour)

	if today.Day() == 1 {
		if err := s.monthlyAccrual(ctx, today); err != nil {
			return err
		}
	}
	if today.Month() == rolloverMonth && today.Day() == rolloverDay {
		if err := s.annualRollover(ctx, today.Format(annualPeriodLayout), nil); err != nil {
			// Manual triggers surface the duplicate; automatic runs treat it
			// as the expected skip.
			if errors.Is(err, schedulererrors.ErrDuplicateExecution) {
				return nil
			}
			return err
		}
	}
	return nil
}

// monthlyAccrual grants one current-year day to every employee permanent for
// at least a month. The execution row is inserted first: losing the unique
// index race means another run already owns this period.
func (s *service) monthlyAccrual(ctx context.Context, today time.Time) error {
	period := today.Format(monthlyPeriodLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("monthly accrual begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	exec := &JobExecution{
		ID:         uuid.New(),
		JobName:    JobMonthlyAccrual,
		PeriodKey:  period,
		ExecutedAt: time.Now().UTC(),
	}
	if err := s.repo.WithTx(tx).Create(ctx, exec); err != nil {
		if isDuplicateExecution(err) {
			s.logger.Info("monthly accrual already ran, skipping",
				zap.String("period", period),
			)
			return nil
		}
		return err
	}

	cutoff := today.AddDate(0, -1, 0)
	ids, err := s.employees.WithTx(tx).FindAccruableIDs(ctx, cutoff)
	if err != nil {
		return err
	}

	affected, err := s.balances.WithTx(tx).AccrueCurrentYear(ctx, ids, 1)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("monthly accrual applied",
		zap.String("period", period),
		zap.Int("eligible", len(ids)),
		zap.Int64("accrued", affected),
	)
	return nil
}

// annualRollover expires last-year balances: last_year takes the value of
// current_year and current_year restarts at zero, for every employee.
func (s *service) annualRollover(ctx context.Context, period string, actorID *uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("annual rollover begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	exec := &JobExecution{
		ID:         uuid.New(),
		JobName:    JobAnnualRollover,
		PeriodKey:  period,
		ExecutedAt: time.Now().UTC(),
		ExecutedBy: actorID,
	}
	if err := s.repo.WithTx(tx).Create(ctx, exec); err != nil {
		if isDuplicateExecution(err) {
			s.logger.Info("annual rollover already ran, skipping",
				zap.String("period", period),
			)
			return schedulererrors.ErrDuplicateExecution
		}
		return err
	}

	affected, err := s.balances.WithTx(tx).RolloverYear(ctx)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("annual rollover applied",
		zap.String("period", period),
		zap.Int64("balances", affected),
	)
	return nil
}

func (s *service) TriggerRollover(ctx context.Context, actorID string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return err
	}

	period := time.Now().UTC().Format(annualPeriodLayout)
	s.logger.Warn("manual rollover triggered",
		zap.String("actor_id", actorID),
		zap.String("period", period),
	)
	return s.annualRollover(ctx, period, &actorUUID)
}

func (s *service) ListExecutions(ctx context.Context) ([]JobExecutionResponse, error) {
	execs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]JobExecutionResponse, 0, len(execs))
	for _, e := range execs {
		item := JobExecutionResponse{
			ID:         e.ID.String(),
			JobName:    e.JobName,
			PeriodKey:  e.PeriodKey,
			ExecutedAt: e.ExecutedAt.Format(time.RFC3339),
		}
		if e.ExecutedBy != nil {
			by := e.ExecutedBy.String()
			item.ExecutedBy = &by
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func isDuplicateExecution(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_job_executions_period"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_job_executions_period")
}
