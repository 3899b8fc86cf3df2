package changeoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"

	"go-leaveco/internal/calendar"
	changeofferrors "go-leaveco/internal/changeoff/errors"
	"go-leaveco/internal/employee"
	employeeerrors "go-leaveco/internal/employee/errors"
	"go-leaveco/internal/events"
	"go-leaveco/internal/ledger"
	"go-leaveco/internal/messaging/kafka"
	"go-leaveco/internal/shared/contextutil"
	"go-leaveco/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

//go:generate mockgen -source=claim_service.go -destination=mock/claim_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitClaimRequest, attachment *multipart.FileHeader) (SubmitClaimResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]ClaimResponse, error)
	ListSubmittedForManager(ctx context.Context, managerID string) ([]ClaimResponse, error)
	ListManagerApproved(ctx context.Context) ([]ClaimResponse, error)
	ManagerApprove(ctx context.Context, managerID, claimID string) (ClaimResponse, error)
	ManagerReject(ctx context.Context, managerID, claimID, reason string) (ClaimResponse, error)
	HRApprove(ctx context.Context, hrID, claimID string) (ClaimResponse, error)
	HRReject(ctx context.Context, hrID, claimID, reason string) (ClaimResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	balances  ledger.Repository
	cal       calendar.Service
	store     storage.Store
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	balances ledger.Repository,
	cal calendar.Service,
	store storage.Store,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("changeoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("changeoff.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		balances:  balances,
		cal:       cal,
		store:     store,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Submit(
	ctx context.Context,
	employeeID string,
	req SubmitClaimRequest,
	attachment *multipart.FileHeader,
) (SubmitClaimResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit claim requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmitClaimResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return SubmitClaimResponse{}, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return SubmitClaimResponse{}, changeofferrors.ErrInvalidDateFormat
	}
	endDate := startDate
	if req.EndDate != "" {
		endDate, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return SubmitClaimResponse{}, changeofferrors.ErrInvalidDateFormat
		}
	}
	if endDate.Before(startDate) {
		return SubmitClaimResponse{}, changeofferrors.ErrInvalidDateRange
	}

	startTime, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return SubmitClaimResponse{}, changeofferrors.ErrInvalidTimeFormat
	}
	endTime, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return SubmitClaimResponse{}, changeofferrors.ErrInvalidTimeFormat
	}
	hours := HoursWorked(startTime, endTime)

	claims := make([]ChangeOffClaim, 0, int(endDate.Sub(startDate).Hours()/24)+1)
	total := 0.0
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dayType, err := s.cal.Classify(ctx, d)
		if err != nil {
			return SubmitClaimResponse{}, err
		}

		value := Value(ValueInput{
			WorkPattern: emp.WorkPattern,
			Day:         dayType,
			StartTime:   startTime,
			EndTime:     endTime,
			Travelling:  req.Travelling,
			Standby:     req.Standby,
		})
		// Hari tanpa nilai tidak diajukan.
		if value == 0 {
			continue
		}

		claims = append(claims, ChangeOffClaim{
			ID:             uuid.New(),
			EmployeeID:     emp.ID,
			Category:       emp.Category,
			WorkPattern:    emp.WorkPattern,
			WorkDate:       d,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Hours:          hours,
			Travelling:     req.Travelling,
			Standby:        req.Standby,
			Classification: string(dayType),
			DayValue:       value,
			Description:    req.Description,
			Status:         StatusSubmitted,
		})
		total += value
	}

	if len(claims) == 0 || total <= 0 {
		return SubmitClaimResponse{}, changeofferrors.ErrZeroValueClaim
	}

	// Attachment goes to disk first; a storage failure aborts the submission
	// before any row exists.
	if attachment != nil {
		path, err := s.store.SaveAttachment(employeeID, attachment)
		if err != nil {
			return SubmitClaimResponse{}, err
		}
		for i := range claims {
			claims[i].AttachmentPath = &path
		}
	}

	if err := s.repo.CreateBatch(ctx, claims); err != nil {
		s.logger.Error("submit claim persist failed", zap.String("request_id", rid), zap.Error(err))
		if len(claims) > 0 && claims[0].AttachmentPath != nil {
			_ = s.store.Remove(*claims[0].AttachmentPath)
		}
		return SubmitClaimResponse{}, err
	}

	s.logger.Info("change off claim submitted",
		zap.String("employee_id", employeeID),
		zap.Int("days", len(claims)),
		zap.Float64("total_value", total),
	)

	resp := SubmitClaimResponse{TotalValue: round2(total)}
	for _, c := range claims {
		resp.Claims = append(resp.Claims, mapClaimToResponse(c))
	}
	return resp, nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]ClaimResponse, error) {
	claims, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapClaimsToResponse(claims), nil
}

func (s *service) ListSubmittedForManager(ctx context.Context, managerID string) ([]ClaimResponse, error) {
	claims, err := s.repo.FindSubmittedForManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return mapClaimsToResponse(claims), nil
}

func (s *service) ListManagerApproved(ctx context.Context) ([]ClaimResponse, error) {
	claims, err := s.repo.FindManagerApproved(ctx)
	if err != nil {
		return nil, err
	}
	return mapClaimsToResponse(claims), nil
}

func (s *service) ManagerApprove(ctx context.Context, managerID, claimID string) (ClaimResponse, error) {
	return s.managerTransition(ctx, managerID, claimID, StatusManagerApproved, nil)
}

func (s *service) ManagerReject(ctx context.Context, managerID, claimID, reason string) (ClaimResponse, error) {
	if reason == "" {
		return ClaimResponse{}, changeofferrors.ErrRejectReasonRequired
	}
	return s.managerTransition(ctx, managerID, claimID, StatusManagerRejected, &reason)
}

// managerTransition is the stage-one gate: ownership-checked, no ledger
// mutation.
func (s *service) managerTransition(ctx context.Context, managerID, claimID, target string, reason *string) (ClaimResponse, error) {
	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return ClaimResponse{}, changeofferrors.ErrInvalidClaimID
	}
	claim, err := s.findClaim(ctx, claimID)
	if err != nil {
		return ClaimResponse{}, err
	}
	if !isAllowedTransition(claim.Status, target) {
		return ClaimResponse{}, changeofferrors.ErrInvalidTransition
	}

	owner, err := s.employees.FindByID(ctx, claim.EmployeeID.String())
	if err != nil {
		return ClaimResponse{}, err
	}
	if owner.ManagerID == nil || *owner.ManagerID != managerUUID {
		return ClaimResponse{}, changeofferrors.ErrNotDirectReport
	}

	now := time.Now().UTC()
	claim.Status = target
	claim.RejectReason = reason
	claim.ManagerApproverID = &managerUUID
	claim.ManagerActedAt = &now

	if err := s.repo.Update(ctx, claim); err != nil {
		s.logger.Error("manager transition persist failed",
			zap.String("claim_id", claimID),
			zap.String("target", target),
			zap.Error(err),
		)
		return ClaimResponse{}, err
	}

	s.logger.Info("claim manager transition",
		zap.String("claim_id", claimID),
		zap.String("manager_id", managerID),
		zap.String("status", target),
	)
	return mapClaimToResponse(*claim), nil
}

// HRApprove is the only point a claim touches the ledger: the credit and the
// status flip commit together or not at all.
func (s *service) HRApprove(ctx context.Context, hrID, claimID string) (ClaimResponse, error) {
	hrUUID, err := uuid.Parse(hrID)
	if err != nil {
		return ClaimResponse{}, changeofferrors.ErrInvalidClaimID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hr approve claim begin tx failed", zap.Error(err))
		return ClaimResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	claim, err := s.findClaimWith(ctx, qtx, claimID)
	if err != nil {
		return ClaimResponse{}, err
	}
	if !isAllowedTransition(claim.Status, StatusHRApproved) {
		return ClaimResponse{}, changeofferrors.ErrInvalidTransition
	}

	balances := s.balances.WithTx(tx)
	balance, err := balances.FindByEmployee(ctx, claim.EmployeeID.String())
	if err != nil {
		return ClaimResponse{}, err
	}
	if err := balance.CreditChangeOff(claim.DayValue); err != nil {
		return ClaimResponse{}, err
	}
	if err := balances.Update(ctx, balance); err != nil {
		return ClaimResponse{}, err
	}

	now := time.Now().UTC()
	claim.Status = StatusHRApproved
	claim.HRApproverID = &hrUUID
	claim.HRActedAt = &now

	if err := qtx.Update(ctx, claim); err != nil {
		return ClaimResponse{}, err
	}
	if err := s.writeStatusEvent(ctx, tx, claim); err != nil {
		return ClaimResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClaimResponse{}, err
	}

	s.logger.Info("claim hr approved",
		zap.String("claim_id", claimID),
		zap.String("hr_id", hrID),
		zap.Float64("credited", claim.DayValue),
	)
	return mapClaimToResponse(*claim), nil
}

func (s *service) HRReject(ctx context.Context, hrID, claimID, reason string) (ClaimResponse, error) {
	if reason == "" {
		return ClaimResponse{}, changeofferrors.ErrRejectReasonRequired
	}
	hrUUID, err := uuid.Parse(hrID)
	if err != nil {
		return ClaimResponse{}, changeofferrors.ErrInvalidClaimID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hr reject claim begin tx failed", zap.Error(err))
		return ClaimResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	claim, err := s.findClaimWith(ctx, qtx, claimID)
	if err != nil {
		return ClaimResponse{}, err
	}
	if !isAllowedTransition(claim.Status, StatusHRRejected) {
		return ClaimResponse{}, changeofferrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	claim.Status = StatusHRRejected
	claim.RejectReason = &reason
	claim.HRApproverID = &hrUUID
	claim.HRActedAt = &now

	if err := qtx.Update(ctx, claim); err != nil {
		return ClaimResponse{}, err
	}
	if err := s.writeStatusEvent(ctx, tx, claim); err != nil {
		return ClaimResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClaimResponse{}, err
	}

	s.logger.Info("claim hr rejected",
		zap.String("claim_id", claimID),
		zap.String("hr_id", hrID),
	)
	return mapClaimToResponse(*claim), nil
}

func (s *service) findClaim(ctx context.Context, claimID string) (*ChangeOffClaim, error) {
	return s.findClaimWith(ctx, s.repo, claimID)
}

func (s *service) findClaimWith(ctx context.Context, repo Repository, claimID string) (*ChangeOffClaim, error) {
	if _, err := uuid.Parse(claimID); err != nil {
		return nil, changeofferrors.ErrInvalidClaimID
	}
	claim, err := repo.FindByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, changeofferrors.ErrClaimNotFound
		}
		return nil, err
	}
	return claim, nil
}

// writeStatusEvent queues the notification in the same transaction; the
// worker delivers it after commit, never before.
func (s *service) writeStatusEvent(ctx context.Context, tx *sql.Tx, claim *ChangeOffClaim) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ChangeOffStatusChangedEvent{
		EventType:  "changeoff.status.changed",
		ClaimID:    claim.ID.String(),
		EmployeeID: claim.EmployeeID.String(),
		WorkDate:   claim.WorkDate.Format(dateLayout),
		DayValue:   claim.DayValue,
		Status:     claim.Status,
		OccurredAt: time.Now().UTC(),
	}
	if claim.RejectReason != nil {
		event.RejectReason = *claim.RejectReason
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "change_off_claim",
		AggregateID:   claim.ID.String(),
		EventType:     event.EventType,
		Topic:         events.ChangeOffStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func isAllowedTransition(from, to string) bool {
	switch to {
	case StatusManagerApproved, StatusManagerRejected:
		return from == StatusSubmitted
	case StatusHRApproved, StatusHRRejected:
		return from == StatusManagerApproved
	default:
		return false
	}
}

func mapClaimToResponse(c ChangeOffClaim) ClaimResponse {
	return ClaimResponse{
		ID:             c.ID.String(),
		EmployeeID:     c.EmployeeID.String(),
		Category:       c.Category,
		WorkPattern:    c.WorkPattern,
		WorkDate:       c.WorkDate.Format(dateLayout),
		StartTime:      c.StartTime,
		EndTime:        c.EndTime,
		Hours:          c.Hours,
		Travelling:     c.Travelling,
		Standby:        c.Standby,
		Classification: c.Classification,
		DayValue:       c.DayValue,
		Description:    c.Description,
		AttachmentPath: c.AttachmentPath,
		Status:         c.Status,
		RejectReason:   c.RejectReason,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

func mapClaimsToResponse(claims []ChangeOffClaim) []ClaimResponse {
	resp := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		resp = append(resp, mapClaimToResponse(c))
	}
	return resp
}
