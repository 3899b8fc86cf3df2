package app

import (
	"go-leaveco/internal/calendar"
	"go-leaveco/internal/changeoff"
	"go-leaveco/internal/employee"
	"go-leaveco/internal/ledger"
	"go-leaveco/internal/leave"
	"go-leaveco/internal/scheduler"

	"gorm.io/gorm"
)

// migrate builds the schema at startup. AutoMigrate is additive, so every
// boot runs it; the unique indexes it creates (uq_employees_nik,
// uq_employees_email, uq_job_executions_period) are what the duplicate
// detection in the employee service and the scheduler relies on.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&ledger.LeaveBalance{},
		&calendar.Holiday{},
		&leave.LeaveRequest{},
		&changeoff.ChangeOffClaim{},
		&scheduler.JobExecution{},
	); err != nil {
		return err
	}

	// Outbox repo bicara raw SQL, tabelnya dibuat dengan cara yang sama.
	for _, ddl := range outboxDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}

var outboxDDL = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		request_id TEXT,
		aggregate_type TEXT NOT NULL,
		aggregate_id UUID NOT NULL,
		event_type TEXT NOT NULL,
		topic TEXT NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		retry_count INT NOT NULL DEFAULT 0,
		error_message TEXT,
		next_retry_at TIMESTAMPTZ,
		processed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pollable
		ON outbox_events (status, created_at)`,
}
