package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/ports/primary"
	"github.com/example/tpp/internal/ports/secondary"
)

// PeriodServiceImpl implements the PeriodService interface.
type PeriodServiceImpl struct {
	yearRepo secondary.YearRepository
	activity secondary.ActivityWriter
	logger   *zap.Logger
}

// NewPeriodService creates a new PeriodService with injected dependencies.
// activity may be nil; a nil logger discards output.
func NewPeriodService(yearRepo secondary.YearRepository, activity secondary.ActivityWriter, logger *zap.Logger) *PeriodServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodServiceImpl{
		yearRepo: yearRepo,
		activity: activity,
		logger:   logger,
	}
}

// LogMultipleDayPeriod marks each date as at least MEDIUM flow.
//
// The batch loads the first date's year and the years either side of it,
// fills flow in memory, then saves all three years. Dates that cannot be
// processed are skipped, and a failed save does not stop the others. The call
// returns once, after every save has finished; skipped dates and failed
// years come back together as a *PartialBatchFailure alongside the result.
func (s *PeriodServiceImpl) LogMultipleDayPeriod(ctx context.Context, dates []calendar.Date) (*primary.BatchResult, error) {
	result := &primary.BatchResult{}
	if len(dates) == 0 {
		return result, nil
	}

	anchorYear := dates[0].Year
	window := period.WindowYears(anchorYear)

	years, err := s.loadWindow(ctx, window)
	if err != nil {
		return nil, err
	}

	result.Dates = period.MarkPeriodDays(years, dates)
	for _, o := range result.Skipped() {
		s.logger.Warn("skipping period date",
			zap.Int("year", o.Date.Year),
			zap.Int("month", o.Date.Month),
			zap.Int("day", o.Date.Day),
			zap.String("reason", o.Reason))
	}

	result.Years = s.saveWindow(ctx, window, years)
	for _, y := range result.FailedYears() {
		s.logger.Error("failed to save period year", zap.Int("year", y.Year), zap.Error(y.Err))
	}

	if len(result.FailedYears()) < len(result.Years) {
		recordActivity(ctx, s.activity, s.logger, ActionLogPeriod, batchKey(dates),
			fmt.Sprintf("applied=%d unchanged=%d skipped=%d",
				result.Count(period.StatusApplied),
				result.Count(period.StatusUnchanged),
				result.Count(period.StatusSkipped)))
	}

	if skipped, failed := result.Skipped(), result.FailedYears(); len(skipped) > 0 || len(failed) > 0 {
		return result, &PartialBatchFailure{Skipped: skipped, FailedYears: failed}
	}
	return result, nil
}

// Helper methods

func (s *PeriodServiceImpl) loadWindow(ctx context.Context, window []int) (map[int]*calendar.YearData, error) {
	years := make(map[int]*calendar.YearData, len(window))
	for _, y := range window {
		data, err := getCalendarByYear(ctx, s.yearRepo, y)
		if err != nil {
			s.logger.Error("failed to load period year", zap.Int("year", y), zap.Error(err))
			return nil, err
		}
		years[y] = &data
	}
	return years, nil
}

// saveWindow persists each loaded year independently and waits for all of them.
func (s *PeriodServiceImpl) saveWindow(ctx context.Context, window []int, years map[int]*calendar.YearData) []primary.YearSaveOutcome {
	outcomes := make([]primary.YearSaveOutcome, len(window))

	var g errgroup.Group
	for i, y := range window {
		i, y := i, y
		data := *years[y]
		g.Go(func() error {
			outcomes[i] = primary.YearSaveOutcome{Year: y, Err: saveYear(ctx, s.yearRepo, y, data)}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func batchKey(dates []calendar.Date) string {
	first, last := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(first) {
			first = d
		}
		if last.Before(d) {
			last = d
		}
	}
	if first == last {
		return first.String()
	}
	return first.String() + ".." + last.String()
}

// Ensure PeriodServiceImpl implements the interface.
var _ primary.PeriodService = (*PeriodServiceImpl)(nil)
