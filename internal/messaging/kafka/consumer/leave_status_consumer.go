package consumer

import (
	"context"
	"encoding/json"

	"go-leaveco/internal/employee"
	"go-leaveco/internal/events"
	"go-leaveco/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveStatus turns committed leave transitions into employee emails.
// Delivery happens strictly after the business transaction; a mail failure
// only delays the redelivery, it never touches the ledger.
func ConsumeLeaveStatus(
	ctx context.Context,
	reader *kafkago.Reader,
	employees employee.Repository,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		emp, err := employees.FindByID(ctx, event.EmployeeID)
		if err != nil {
			log.Error("load employee for leave notification failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := notification.LeaveStatusMessage(emp.FullName, event.LeaveType, event.Status, event.RejectReason)
		if err := mailer.Send(ctx, emp.Email, subject, body); err != nil {
			log.Error("send leave notification failed",
				zap.String("leave_id", event.RequestID),
				zap.String("to", emp.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification sent",
			zap.String("leave_id", event.RequestID),
			zap.String("status", event.Status),
		)
	}
}
