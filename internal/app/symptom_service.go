package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/symptoms"
	"github.com/example/tpp/internal/ports/primary"
	"github.com/example/tpp/internal/ports/secondary"
)

// Activity actions recorded by the services.
const (
	ActionLogSymptoms = "log_symptoms"
	ActionLogPeriod   = "log_period"
	ActionOnboarding  = "onboarding"
)

// SymptomServiceImpl implements the SymptomService interface.
type SymptomServiceImpl struct {
	yearRepo secondary.YearRepository
	activity secondary.ActivityWriter
	logger   *zap.Logger
}

// NewSymptomService creates a new SymptomService with injected dependencies.
// activity may be nil; a nil logger discards output.
func NewSymptomService(yearRepo secondary.YearRepository, activity secondary.ActivityWriter, logger *zap.Logger) *SymptomServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SymptomServiceImpl{
		yearRepo: yearRepo,
		activity: activity,
		logger:   logger,
	}
}

// LogSymptomsForDate replaces the whole record for req.Date and persists the year.
// Invalid dates and records are rejected before storage is touched.
func (s *SymptomServiceImpl) LogSymptomsForDate(ctx context.Context, req primary.LogSymptomsRequest) error {
	d := req.Date
	if err := calendar.ValidateDate(d); err != nil {
		return err
	}
	if err := req.Symptoms.Validate(); err != nil {
		return err
	}

	data, err := getCalendarByYear(ctx, s.yearRepo, d.Year)
	if err != nil {
		s.logger.Error("failed to load year", zap.Int("year", d.Year), zap.Error(err))
		return err
	}

	if err := data.SetSymptoms(d, req.Symptoms); err != nil {
		return err
	}

	if err := saveYear(ctx, s.yearRepo, d.Year, data); err != nil {
		s.logger.Error("failed to save symptoms",
			zap.Int("year", d.Year),
			zap.Int("month", d.Month),
			zap.Int("day", d.Day),
			zap.Error(err))
		return err
	}

	s.logger.Debug("logged symptoms", zap.String("date", d.String()), zap.String("flow", string(req.Symptoms.Flow)))
	recordActivity(ctx, s.activity, s.logger, ActionLogSymptoms, d.String(), describeSymptoms(req.Symptoms))
	return nil
}

// GetSymptomsForDate returns the record for date, or nil when nothing is logged.
func (s *SymptomServiceImpl) GetSymptomsForDate(ctx context.Context, date calendar.Date) (*symptoms.Symptoms, error) {
	if err := calendar.ValidateDate(date); err != nil {
		return nil, err
	}

	data, err := getCalendarByYear(ctx, s.yearRepo, date.Year)
	if err != nil {
		return nil, err
	}

	stored, err := data.Symptoms(date.Day, date.Month)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	out := stored.Clone()
	return &out, nil
}

// GetCalendarByYear returns the stored year or a fresh empty one.
func (s *SymptomServiceImpl) GetCalendarByYear(ctx context.Context, year int) (calendar.YearData, error) {
	return getCalendarByYear(ctx, s.yearRepo, year)
}

// ListPeriodDays returns the dates of year with LIGHT, MEDIUM or HEAVY flow.
func (s *SymptomServiceImpl) ListPeriodDays(ctx context.Context, year int) ([]calendar.Date, error) {
	data, err := getCalendarByYear(ctx, s.yearRepo, year)
	if err != nil {
		return nil, err
	}

	var days []calendar.Date
	for _, d := range data.LoggedDates(year) {
		if data.SymptomsOrEmpty(d.Day, d.Month).Flow.IsBleeding() {
			days = append(days, d)
		}
	}
	return days, nil
}

// Helper methods

func describeSymptoms(s symptoms.Symptoms) string {
	if s.Flow == symptoms.FlowUnset {
		return "flow=unset"
	}
	return "flow=" + string(s.Flow)
}

// recordActivity appends to the activity log. The write it describes has
// already been persisted, so a failure here is logged and dropped.
func recordActivity(ctx context.Context, w secondary.ActivityWriter, logger *zap.Logger, action, dateKey, detail string) {
	if w == nil {
		return
	}
	if err := w.Record(ctx, action, dateKey, detail); err != nil {
		logger.Warn("failed to record activity", zap.String("action", action), zap.String("date", dateKey), zap.Error(err))
	}
}

// Ensure SymptomServiceImpl implements the interface.
var _ primary.SymptomService = (*SymptomServiceImpl)(nil)
