package ledger

import (
	"context"
	"database/sql"

	"go-leaveco/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployee(ctx context.Context, employeeID string) (*LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
	Delete(ctx context.Context, employeeID string) error

	AccrueCurrentYear(ctx context.Context, employeeIDs []string, days int) (int64, error)
	RolloverYear(ctx context.Context) (int64, error)
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).First(&b, "employee_id = ?", employeeID).Error
	return &b, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).Delete(&LeaveBalance{}, "employee_id = ?", employeeID).Error
}

// AccrueCurrentYear adds leave days to the current_year bucket of the given
// employees in one statement.
func (r *repository) AccrueCurrentYear(ctx context.Context, employeeIDs []string, days int) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("employee_id IN ?", employeeIDs).
		UpdateColumn("current_year", gorm.Expr("current_year + ?", days))
	return res.RowsAffected, res.Error
}

// RolloverYear moves every employee's current_year into last_year and zeroes
// current_year. The previous last_year balance expires here.
func (r *repository) RolloverYear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("1 = 1").
		UpdateColumns(map[string]interface{}{
			"last_year":    gorm.Expr("current_year"),
			"current_year": 0,
		})
	return res.RowsAffected, res.Error
}
