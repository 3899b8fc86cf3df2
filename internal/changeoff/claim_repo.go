package changeoff

import (
	"context"
	"database/sql"

	"go-leaveco/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=claim_repo.go -destination=mock/claim_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, claims []ChangeOffClaim) error
	FindByID(ctx context.Context, id string) (*ChangeOffClaim, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]ChangeOffClaim, error)
	FindSubmittedForManager(ctx context.Context, managerID string) ([]ChangeOffClaim, error)
	FindManagerApproved(ctx context.Context) ([]ChangeOffClaim, error)
	Update(ctx context.Context, claim *ChangeOffClaim) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) CreateBatch(ctx context.Context, claims []ChangeOffClaim) error {
	return r.db.WithContext(ctx).Create(&claims).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ChangeOffClaim, error) {
	var claim ChangeOffClaim
	err := r.db.WithContext(ctx).First(&claim, "id = ?", id).Error
	return &claim, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]ChangeOffClaim, error) {
	var claims []ChangeOffClaim
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC").
		Find(&claims).Error
	return claims, err
}

// FindSubmittedForManager lists pending claims from the manager's direct
// reports only; ownership is resolved through the employees table.
func (r *repository) FindSubmittedForManager(ctx context.Context, managerID string) ([]ChangeOffClaim, error) {
	var claims []ChangeOffClaim
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = change_off_claims.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("change_off_claims.status = ?", StatusSubmitted).
		Order("change_off_claims.work_date ASC").
		Find(&claims).Error
	return claims, err
}

func (r *repository) FindManagerApproved(ctx context.Context) ([]ChangeOffClaim, error) {
	var claims []ChangeOffClaim
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusManagerApproved).
		Order("work_date ASC").
		Find(&claims).Error
	return claims, err
}

func (r *repository) Update(ctx context.Context, claim *ChangeOffClaim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}
