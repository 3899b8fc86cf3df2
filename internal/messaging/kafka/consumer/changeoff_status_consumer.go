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

func ConsumeChangeOffStatus(
	ctx context.Context,
	reader *kafkago.Reader,
	employees employee.Repository,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.changeoff_status")
	log.Info("change off status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("change off status consumer stopped")
				return
			}
			log.Error("fetch change off status message failed", zap.Error(err))
			continue
		}

		var event events.ChangeOffStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode change off status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		emp, err := employees.FindByID(ctx, event.EmployeeID)
		if err != nil {
			log.Error("load employee for claim notification failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := notification.ClaimStatusMessage(emp.FullName, event.WorkDate, event.DayValue, event.Status, event.RejectReason)
		if err := mailer.Send(ctx, emp.Email, subject, body); err != nil {
			log.Error("send claim notification failed",
				zap.String("claim_id", event.ClaimID),
				zap.String("to", emp.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit change off status message failed", zap.Error(err))
			continue
		}

		log.Info("claim notification sent",
			zap.String("claim_id", event.ClaimID),
			zap.String("status", event.Status),
		)
	}
}
