// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI and other callers use to drive the core.
package primary

import (
	"context"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/core/symptoms"
)

// SymptomService defines the primary port for single-day symptom logging and reads.
type SymptomService interface {
	// LogSymptomsForDate replaces the full record for one day.
	LogSymptomsForDate(ctx context.Context, req LogSymptomsRequest) error

	// GetSymptomsForDate returns the record for one day; nil when nothing is logged.
	GetSymptomsForDate(ctx context.Context, date calendar.Date) (*symptoms.Symptoms, error)

	// GetCalendarByYear returns the stored year, or a fresh empty year.
	GetCalendarByYear(ctx context.Context, year int) (calendar.YearData, error)

	// ListPeriodDays returns the dates in year with bleeding flow logged.
	ListPeriodDays(ctx context.Context, year int) ([]calendar.Date, error)
}

// LogSymptomsRequest contains parameters for logging one day.
type LogSymptomsRequest struct {
	Date     calendar.Date
	Symptoms symptoms.Symptoms
}

// PeriodService defines the primary port for multi-day period logging.
type PeriodService interface {
	// LogMultipleDayPeriod marks every date as at least MEDIUM flow.
	// The result is returned even when err is a partial batch failure.
	LogMultipleDayPeriod(ctx context.Context, dates []calendar.Date) (*BatchResult, error)
}

// BatchResult reports every date and every saved year of a period batch.
type BatchResult struct {
	Dates []period.DateOutcome
	Years []YearSaveOutcome
}

// YearSaveOutcome is the result of persisting one year of a batch.
type YearSaveOutcome struct {
	Year int
	Err  error
}

// Count returns how many dates ended with status.
func (r *BatchResult) Count(status period.OutcomeStatus) int {
	n := 0
	for _, o := range r.Dates {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Skipped returns the dates that could not be processed.
func (r *BatchResult) Skipped() []period.DateOutcome {
	var out []period.DateOutcome
	for _, o := range r.Dates {
		if o.Status == period.StatusSkipped {
			out = append(out, o)
		}
	}
	return out
}

// FailedYears returns the years whose save failed.
func (r *BatchResult) FailedYears() []YearSaveOutcome {
	var out []YearSaveOutcome
	for _, y := range r.Years {
		if y.Err != nil {
			out = append(out, y)
		}
	}
	return out
}
