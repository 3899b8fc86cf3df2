package scheduler

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobMonthlyAccrual = "monthly_accrual"
	JobAnnualRollover = "annual_rollover"
)

// JobExecution is the append-only audit row for one scheduler run. The
// unique (job_name, period_key) index is the idempotency guard: the insert
// itself decides who runs, so two racing triggers cannot both apply.
type JobExecution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobName   string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_job_executions_period"`
	PeriodKey string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_job_executions_period"`

	ExecutedAt time.Time `gorm:"not null"`

	// ExecutedBy is set only for manual HR triggers.
	ExecutedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}

func (JobExecution) TableName() string {
	return "job_executions"
}
