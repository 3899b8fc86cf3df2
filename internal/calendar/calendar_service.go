package calendar

import (
	"context"
	"errors"
	calendarerrors "go-leaveco/internal/calendar/errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DayType is the classification of a calendar date. Holiday wins over
// weekend when a holiday falls on Saturday or Sunday.
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
	DayTypeHoliday DayType = "holiday"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	Classify(ctx context.Context, date time.Time) (DayType, error)
	WorkingDays(ctx context.Context, start, end time.Time) (int, error)

	AddHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	UpdateHoliday(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Classify(ctx context.Context, date time.Time) (DayType, error) {
	day := truncateToDate(date)

	isHoliday, err := s.repo.ExistsOnDate(ctx, day)
	if err != nil {
		return "", err
	}
	return classifyDay(day, isHoliday), nil
}

// WorkingDays counts weekday non-holiday dates in the inclusive range.
func (s *service) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return 0, calendarerrors.ErrInvalidDateRange
	}

	dates, err := s.repo.FindDatesBetween(ctx, start, end)
	if err != nil {
		return 0, err
	}
	holidays := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		holidays[d.Format(dateLayout)] = struct{}{}
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, isHoliday := holidays[d.Format(dateLayout)]
		if classifyDay(d, isHoliday) == DayTypeWeekday {
			days++
		}
	}
	return days, nil
}

func classifyDay(d time.Time, isHoliday bool) DayType {
	if isHoliday {
		return DayTypeHoliday
	}
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) AddHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(dateLayout, req.HolidayDate)
	if err != nil {
		return HolidayResponse{}, calendarerrors.ErrInvalidDateFormat
	}

	exists, err := s.repo.ExistsOnDate(ctx, date)
	if err != nil {
		return HolidayResponse{}, err
	}
	if exists {
		return HolidayResponse{}, calendarerrors.ErrHolidayAlreadyExists
	}

	h := &Holiday{
		ID:          uuid.New(),
		HolidayDate: date,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("add holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday added",
		zap.String("holiday_date", req.HolidayDate),
		zap.String("description", req.Description),
	)
	return mapToResponse(*h), nil
}

func (s *service) ListHolidays(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) UpdateHoliday(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, calendarerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	h.Description = req.Description
	if err := s.repo.Update(ctx, h); err != nil {
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		HolidayDate: h.HolidayDate.Format(dateLayout),
		Description: h.Description,
	}
}
