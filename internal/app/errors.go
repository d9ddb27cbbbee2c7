package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/ports/primary"
)

const retryMessage = "Something went wrong. Please try again later."

// StorageError reports a failed read or write of a year. The cause is kept
// for logging and errors.Is checks; the user only sees a retry message.
type StorageError struct {
	Op   string // "load" or "save"
	Year int
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s year %d: %v", e.Op, e.Year, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the person logging.
func (e *StorageError) UserMessage() string { return retryMessage }

// PartialBatchFailure reports a period batch where some dates were skipped
// or some years failed to save. All other work in the batch was still done.
type PartialBatchFailure struct {
	Skipped     []period.DateOutcome
	FailedYears []primary.YearSaveOutcome
}

func (e *PartialBatchFailure) Error() string {
	var parts []string
	if n := len(e.Skipped); n > 0 {
		dates := make([]string, 0, n)
		for _, o := range e.Skipped {
			dates = append(dates, o.Date.String())
		}
		parts = append(parts, fmt.Sprintf("%d date(s) skipped (%s)", n, strings.Join(dates, ", ")))
	}
	if n := len(e.FailedYears); n > 0 {
		years := make([]string, 0, n)
		for _, y := range e.FailedYears {
			years = append(years, fmt.Sprintf("%d: %v", y.Year, y.Err))
		}
		parts = append(parts, fmt.Sprintf("%d year(s) failed to save (%s)", n, strings.Join(years, "; ")))
	}
	return "period batch incomplete: " + strings.Join(parts, ", ")
}

// Unwrap exposes the per-year save errors to errors.Is and errors.As.
func (e *PartialBatchFailure) Unwrap() []error {
	errs := make([]error, 0, len(e.FailedYears))
	for _, y := range e.FailedYears {
		errs = append(errs, y.Err)
	}
	return errs
}

// UserMessage is the text shown to the person logging.
func (e *PartialBatchFailure) UserMessage() string {
	if len(e.FailedYears) > 0 {
		return "Unable to save your period for every selected day. Please try again later."
	}
	return fmt.Sprintf("%d of the selected days could not be logged.", len(e.Skipped))
}

// UserMessage returns the user-facing text for err. Errors that carry no
// message of their own get the generic retry message.
func UserMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return retryMessage
}
