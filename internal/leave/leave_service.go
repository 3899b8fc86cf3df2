package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-leaveco/internal/calendar"
	"go-leaveco/internal/employee"
	employeeerrors "go-leaveco/internal/employee/errors"
	"go-leaveco/internal/events"
	"go-leaveco/internal/ledger"
	leaveerrors "go-leaveco/internal/leave/errors"
	"go-leaveco/internal/messaging/kafka"
	"go-leaveco/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	ListSubmittedForManager(ctx context.Context, managerID string) ([]LeaveResponse, error)
	ListManagerApproved(ctx context.Context) ([]LeaveResponse, error)
	ManagerApprove(ctx context.Context, managerID, requestID string) (LeaveResponse, error)
	ManagerReject(ctx context.Context, managerID, requestID, reason string) (LeaveResponse, error)
	HRApprove(ctx context.Context, hrID, requestID string) (LeaveResponse, error)
	HRReject(ctx context.Context, hrID, requestID, reason string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	balances  ledger.Repository
	cal       calendar.Service
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	balances ledger.Repository,
	cal calendar.Service,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		balances:  balances,
		cal:       cal,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
	)

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if req.HalfDay && req.LeaveType != TypeChangeOff {
		return LeaveResponse{}, leaveerrors.ErrHalfDayNotChangeOff
	}

	workingDays, err := s.cal.WorkingDays(ctx, startDate, endDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	totalDays := float64(workingDays)
	if req.HalfDay {
		totalDays -= 0.5
	}
	if totalDays <= 0 {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	request := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		HalfDay:    req.HalfDay,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     StatusSubmitted,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	resp := mapLeaveToResponse(*request)
	resp.BalanceWarning = s.advisoryWarning(ctx, employeeID, req.LeaveType, totalDays)

	s.logger.Info("leave request submitted",
		zap.String("leave_id", request.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.Float64("total_days", totalDays),
	)
	return resp, nil
}

// advisoryWarning is the soft sufficiency check at submission: it never
// blocks, because the authoritative debit happens at HR approval.
func (s *service) advisoryWarning(ctx context.Context, employeeID, leaveType string, days float64) string {
	balance, err := s.balances.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Warn("advisory balance read failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ""
	}
	if balance.Sufficient(leaveType, days) {
		return ""
	}
	return fmt.Sprintf("current balance does not cover %.1f day(s) of %s leave; HR approval will fail unless the balance changes", days, leaveType)
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapLeavesToResponse(reqs), nil
}

func (s *service) ListSubmittedForManager(ctx context.Context, managerID string) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindSubmittedForManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return mapLeavesToResponse(reqs), nil
}

func (s *service) ListManagerApproved(ctx context.Context) ([]LeaveResponse, error) {
	reqs, err := s.repo.FindManagerApproved(ctx)
	if err != nil {
		return nil, err
	}
	return mapLeavesToResponse(reqs), nil
}

func (s *service) ManagerApprove(ctx context.Context, managerID, requestID string) (LeaveResponse, error) {
	return s.managerTransition(ctx, managerID, requestID, StatusManagerApproved, nil)
}

func (s *service) ManagerReject(ctx context.Context, managerID, requestID, reason string) (LeaveResponse, error) {
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectReasonRequired
	}
	return s.managerTransition(ctx, managerID, requestID, StatusManagerRejected, &reason)
}

// managerTransition is the stage-one soft gate: no ledger mutation, only for
// direct reports.
func (s *service) managerTransition(ctx context.Context, managerID, requestID, target string, reason *string) (LeaveResponse, error) {
	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRequestID
	}
	request, err := s.findRequest(ctx, s.repo, requestID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !isAllowedTransition(request.Status, target) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	owner, err := s.employees.FindByID(ctx, request.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if owner.ManagerID == nil || *owner.ManagerID != managerUUID {
		return LeaveResponse{}, leaveerrors.ErrNotDirectReport
	}

	now := time.Now().UTC()
	request.Status = target
	request.RejectReason = reason
	request.ManagerApproverID = &managerUUID
	request.ManagerActedAt = &now

	if err := s.repo.Update(ctx, request); err != nil {
		s.logger.Error("manager transition persist failed",
			zap.String("leave_id", requestID),
			zap.String("target", target),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("leave manager transition",
		zap.String("leave_id", requestID),
		zap.String("manager_id", managerID),
		zap.String("status", target),
	)
	return mapLeaveToResponse(*request), nil
}

// HRApprove runs the debit and the status flip in one transaction. An
// insufficient balance rolls everything back and the request stays in
// MANAGER_APPROVED for a re-attempt or rejection.
func (s *service) HRApprove(ctx context.Context, hrID, requestID string) (LeaveResponse, error) {
	hrUUID, err := uuid.Parse(hrID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hr approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	request, err := s.findRequest(ctx, qtx, requestID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !isAllowedTransition(request.Status, StatusHRApproved) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	balances := s.balances.WithTx(tx)
	balance, err := balances.FindByEmployee(ctx, request.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := applyDebit(balance, request.LeaveType, request.TotalDays); err != nil {
		s.logger.Warn("hr approve leave debit refused",
			zap.String("leave_id", requestID),
			zap.String("leave_type", request.LeaveType),
			zap.Float64("total_days", request.TotalDays),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := balances.Update(ctx, balance); err != nil {
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	request.Status = StatusHRApproved
	request.HRApproverID = &hrUUID
	request.HRActedAt = &now

	if err := qtx.Update(ctx, request); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.writeStatusEvent(ctx, tx, request); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave hr approved",
		zap.String("leave_id", requestID),
		zap.String("hr_id", hrID),
		zap.Float64("debited", request.TotalDays),
	)
	return mapLeaveToResponse(*request), nil
}

func (s *service) HRReject(ctx context.Context, hrID, requestID, reason string) (LeaveResponse, error) {
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectReasonRequired
	}
	hrUUID, err := uuid.Parse(hrID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hr reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	request, err := s.findRequest(ctx, qtx, requestID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !isAllowedTransition(request.Status, StatusHRRejected) {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	request.Status = StatusHRRejected
	request.RejectReason = &reason
	request.HRApproverID = &hrUUID
	request.HRActedAt = &now

	if err := qtx.Update(ctx, request); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.writeStatusEvent(ctx, tx, request); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave hr rejected",
		zap.String("leave_id", requestID),
		zap.String("hr_id", hrID),
	)
	return mapLeaveToResponse(*request), nil
}

// applyDebit picks the bucket by leave type: waterfall for personal, the
// change_off pool for change off, the usage counter for sick (no doc).
func applyDebit(balance *ledger.LeaveBalance, leaveType string, totalDays float64) error {
	switch leaveType {
	case TypeChangeOff:
		return balance.DebitChangeOff(totalDays)
	case TypeSickNoDoc:
		return balance.UseSickNoDoc(int(totalDays))
	default:
		return balance.DebitPersonal(int(totalDays))
	}
}

func (s *service) findRequest(ctx context.Context, repo Repository, requestID string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, leaveerrors.ErrInvalidRequestID
	}
	request, err := repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *service) writeStatusEvent(ctx context.Context, tx *sql.Tx, request *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveStatusChangedEvent{
		EventType:  "leave.status.changed",
		RequestID:  request.ID.String(),
		EmployeeID: request.EmployeeID.String(),
		LeaveType:  request.LeaveType,
		Status:     request.Status,
		OccurredAt: time.Now().UTC(),
	}
	if request.RejectReason != nil {
		event.RejectReason = *request.RejectReason
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveStatusChangedTopic,
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

func mapLeaveToResponse(r LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID.String(),
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate.Format(dateLayout),
		EndDate:      r.EndDate.Format(dateLayout),
		HalfDay:      r.HalfDay,
		TotalDays:    r.TotalDays,
		Reason:       r.Reason,
		Status:       r.Status,
		RejectReason: r.RejectReason,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

func mapLeavesToResponse(reqs []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, 0, len(reqs))
	for _, r := range reqs {
		resp = append(resp, mapLeaveToResponse(r))
	}
	return resp
}
