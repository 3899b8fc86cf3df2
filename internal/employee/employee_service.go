package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeeerrors "go-leaveco/internal/employee/errors"
	"go-leaveco/internal/ledger"
	"go-leaveco/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	balances ledger.Repository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, balances ledger.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, balances: balances, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("nik", req.NIK),
		zap.String("email", req.Email),
	)

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		s.logger.Warn("create employee invalid join_date",
			zap.String("join_date", req.JoinDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}
	permanentDate, err := parseOptionalDate(req.PermanentDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	managerID, err := s.resolveManagerID(ctx, qtx, req.ManagerID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:            uuid.New(),
		NIK:           req.NIK,
		FullName:      req.FullName,
		Email:         req.Email,
		Role:          req.Role,
		Category:      req.Category,
		WorkPattern:   req.WorkPattern,
		JoinDate:      joinDate,
		PermanentDate: permanentDate,
		ManagerID:     managerID,
		PasswordHash:  string(hash),
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Saldo dibuat bersamaan: every employee starts with an empty ledger.
	balance := &ledger.LeaveBalance{EmployeeID: e.ID}
	if err := s.balances.WithTx(tx).Create(ctx, balance); err != nil {
		s.logger.Error("create employee seed balance failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("nik", e.NIK),
		zap.String("role", e.Role),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}
	permanentDate, err := parseOptionalDate(req.PermanentDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	managerID, err := s.resolveManagerID(ctx, qtx, req.ManagerID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if managerID != nil && *managerID == e.ID {
		return EmployeeResponse{}, employeeerrors.ErrInvalidManagerID
	}

	e.NIK = req.NIK
	e.FullName = req.FullName
	e.Email = req.Email
	e.Role = req.Role
	e.Category = req.Category
	e.WorkPattern = req.WorkPattern
	e.JoinDate = joinDate
	e.PermanentDate = permanentDate
	e.ManagerID = managerID

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee updated", zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func (s *service) ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.PasswordHash = string(hash)

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("reset password persist failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("employee password reset", zap.String("employee_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	// Ledger row goes first so the employee delete never leaves an orphan.
	if err := s.balances.WithTx(tx).Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("delete employee balance failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

func (s *service) resolveManagerID(ctx context.Context, repo Repository, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, employeeerrors.ErrInvalidManagerID
	}
	if _, err := repo.FindByID(ctx, parsed.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrManagerNotFound
		}
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID.String(),
		NIK:         e.NIK,
		FullName:    e.FullName,
		Email:       e.Email,
		Role:        e.Role,
		Category:    e.Category,
		WorkPattern: e.WorkPattern,
		JoinDate:    e.JoinDate.Format("2006-01-02"),
	}
	if e.PermanentDate != nil {
		d := e.PermanentDate.Format("2006-01-02")
		resp.PermanentDate = &d
	}
	if e.ManagerID != nil {
		m := e.ManagerID.String()
		resp.ManagerID = &m
	}
	return resp
}
