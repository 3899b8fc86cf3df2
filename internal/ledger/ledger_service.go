package ledger

import (
	"context"
	"database/sql"
	"errors"
	ledgererrors "go-leaveco/internal/ledger/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	Snapshot(ctx context.Context, employeeID string) (BalanceResponse, error)
	Overwrite(ctx context.Context, actorID, employeeID string, req OverwriteBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Snapshot(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, ledgererrors.ErrInvalidEmployeeID
	}

	b, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, ledgererrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return MapToResponse(*b), nil
}

// Overwrite is the HR manual override: a direct edit of all four buckets,
// used as the compensating action once a transition has committed.
func (s *service) Overwrite(ctx context.Context, actorID, employeeID string, req OverwriteBalanceRequest) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, ledgererrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("overwrite balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, ledgererrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	b.LastYear = req.LastYear
	b.CurrentYear = req.CurrentYear
	b.ChangeOff = req.ChangeOff
	b.SickNoDoc = req.SickNoDoc

	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("overwrite balance persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("balance overwritten",
		zap.String("employee_id", employeeID),
		zap.String("actor_id", actorID),
		zap.Int("last_year", req.LastYear),
		zap.Int("current_year", req.CurrentYear),
		zap.Float64("change_off", req.ChangeOff),
		zap.Int("sick_no_doc", req.SickNoDoc),
	)
	return MapToResponse(*b), nil
}

func MapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:  b.EmployeeID.String(),
		LastYear:    b.LastYear,
		CurrentYear: b.CurrentYear,
		ChangeOff:   b.ChangeOff,
		SickNoDoc:   b.SickNoDoc,
	}
}
