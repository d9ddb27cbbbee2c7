package calendar

import (
	"errors"
	"fmt"
	"time"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanLogForDate evaluates whether symptoms may be logged for d.
// Rules:
// - Month must be in [1,12]
// - Day must be in [1, days in that month] (leap-year aware)
func CanLogForDate(d Date) GuardResult {
	if d.Valid() {
		return GuardResult{Allowed: true}
	}
	return GuardResult{Allowed: false, Reason: invalidReason(d)}
}

func invalidReason(d Date) string {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Sprintf("month %d is outside 1-12", d.Month)
	}
	return fmt.Sprintf("%s %d has %d days, got day %d",
		time.Month(d.Month), d.Year, DaysInMonth(d.Month, d.Year), d.Day)
}

// InvalidDateError reports a coordinate that failed calendar validation.
// It is raised before storage is touched.
type InvalidDateError struct {
	Date   Date
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %s: %s", e.Date, e.Reason)
}

// UserMessage is the text shown to the person logging.
func (e *InvalidDateError) UserMessage() string {
	return "Sorry, this isn't a valid date to log symptoms for!"
}

// ValidateDate returns an *InvalidDateError when d is not a real date.
func ValidateDate(d Date) error {
	if r := CanLogForDate(d); !r.Allowed {
		return &InvalidDateError{Date: d, Reason: r.Reason}
	}
	return nil
}

// ErrSlotNotFound is returned by strict reads for coordinates the loaded
// structure does not contain.
var ErrSlotNotFound = errors.New("no symptom slot for date")
