package scheduler

import (
	"context"
	"database/sql"

	"go-leaveco/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=job_repo.go -destination=mock/job_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, exec *JobExecution) error
	FindAll(ctx context.Context) ([]JobExecution, error)
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

func (r *repository) Create(ctx context.Context, exec *JobExecution) error {
	return r.db.WithContext(ctx).Create(exec).Error
}

func (r *repository) FindAll(ctx context.Context) ([]JobExecution, error) {
	var execs []JobExecution
	err := r.db.WithContext(ctx).
		Order("executed_at DESC").
		Find(&execs).Error
	return execs, err
}
