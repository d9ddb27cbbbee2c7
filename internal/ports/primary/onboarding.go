package primary

import (
	"context"

	"github.com/example/tpp/internal/core/calendar"
)

// OnboardingService defines the primary port for first-run setup.
type OnboardingService interface {
	// SetInitialPeriodLength stores the typical period length in days.
	SetInitialPeriodLength(ctx context.Context, days int) error

	// SetInitialPeriodStart records the last period and logs its days.
	SetInitialPeriodStart(ctx context.Context, req SetPeriodStartRequest) (*SetPeriodStartResponse, error)

	// GetProfile returns the stored onboarding profile (zero value when none).
	GetProfile(ctx context.Context) (*Profile, error)

	// ResetProfile forgets the onboarding profile. Logged days are kept.
	ResetProfile(ctx context.Context) error
}

// SetPeriodStartRequest contains parameters for recording the last period.
// End is optional; when absent the stored period length decides the range.
type SetPeriodStartRequest struct {
	Start calendar.Date
	End   *calendar.Date
}

// SetPeriodStartResponse contains the resolved range and the batch result.
type SetPeriodStartResponse struct {
	Start calendar.Date
	End   calendar.Date
	Batch *BatchResult
}

// Profile represents the onboarding profile at the port boundary.
type Profile struct {
	PeriodLength int
	PeriodStart  string
	PeriodEnd    string
	UpdatedAt    string
}
