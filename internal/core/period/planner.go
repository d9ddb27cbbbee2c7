// Package period contains the pure logic for batch period logging: which
// years a batch loads, and how each date merges into the loaded years.
// Loading and saving is the caller's job; everything here is in-memory.
package period

import (
	"fmt"

	"github.com/example/tpp/internal/core/calendar"
)

// OutcomeStatus classifies what happened to one date of a batch.
type OutcomeStatus string

const (
	// StatusApplied means flow was filled in with MEDIUM.
	StatusApplied OutcomeStatus = "applied"
	// StatusUnchanged means flow was already logged and was kept.
	StatusUnchanged OutcomeStatus = "unchanged"
	// StatusSkipped means the date could not be processed.
	StatusSkipped OutcomeStatus = "skipped"
)

// DateOutcome is the per-date result of a batch.
type DateOutcome struct {
	Date   calendar.Date
	Status OutcomeStatus
	Reason string // only for StatusSkipped
}

// WindowYears returns the years a batch anchored at anchorYear loads and
// saves: the anchor plus one year either side, so selections that cross a
// New Year boundary land in a loaded structure.
func WindowYears(anchorYear int) []int {
	return []int{anchorYear - 1, anchorYear, anchorYear + 1}
}

// MarkPeriodDays fills flow on each date of dates into years, which must map
// every window year to its loaded structure. A date that cannot be processed
// is reported as skipped and does not stop the rest of the batch.
func MarkPeriodDays(years map[int]*calendar.YearData, dates []calendar.Date) []DateOutcome {
	outcomes := make([]DateOutcome, 0, len(dates))
	for _, d := range dates {
		outcomes = append(outcomes, markPeriodDay(years, d))
	}
	return outcomes
}

func markPeriodDay(years map[int]*calendar.YearData, d calendar.Date) DateOutcome {
	if r := calendar.CanLogForDate(d); !r.Allowed {
		return DateOutcome{Date: d, Status: StatusSkipped, Reason: r.Reason}
	}

	data, ok := years[d.Year]
	if !ok || data == nil {
		return DateOutcome{
			Date:   d,
			Status: StatusSkipped,
			Reason: fmt.Sprintf("year %d is outside the loaded window", d.Year),
		}
	}

	s := data.SymptomsOrEmpty(d.Day, d.Month)
	if !s.ApplyPeriodFlow() {
		return DateOutcome{Date: d, Status: StatusUnchanged}
	}
	if err := data.SetSymptoms(d, s); err != nil {
		return DateOutcome{Date: d, Status: StatusSkipped, Reason: err.Error()}
	}
	return DateOutcome{Date: d, Status: StatusApplied}
}

// ResolveRange picks the period range recorded at onboarding.
// With an explicit end the range is [start, end]. Without one, a known
// period length gives end = start + length - 1 days. Any computed end
// later than today is capped at today, and with neither the range is the
// single day start. A start or explicit end after today is rejected.
func ResolveRange(start calendar.Date, end *calendar.Date, periodLength int, today calendar.Date) (calendar.Date, calendar.Date, error) {
	if err := calendar.ValidateDate(start); err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if today.Before(start) {
		return calendar.Date{}, calendar.Date{}, fmt.Errorf("period start %s is in the future", start)
	}

	resolved := start
	switch {
	case end != nil:
		if err := calendar.ValidateDate(*end); err != nil {
			return calendar.Date{}, calendar.Date{}, err
		}
		if today.Before(*end) {
			return calendar.Date{}, calendar.Date{}, fmt.Errorf("period end %s is in the future", *end)
		}
		resolved = *end
	case periodLength > 0:
		resolved = start.AddDays(periodLength - 1)
		if today.Before(resolved) {
			resolved = today
		}
	}

	if resolved.Before(start) {
		return calendar.Date{}, calendar.Date{}, fmt.Errorf("period end %s is before start %s", resolved, start)
	}
	return start, resolved, nil
}
