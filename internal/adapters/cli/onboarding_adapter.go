package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/ports/primary"
)

// OnboardingAdapter translates CLI operations to OnboardingService calls.
type OnboardingAdapter struct {
	service primary.OnboardingService
	out     io.Writer
}

// NewOnboardingAdapter creates a new OnboardingAdapter with the given service.
func NewOnboardingAdapter(service primary.OnboardingService, out io.Writer) *OnboardingAdapter {
	return &OnboardingAdapter{
		service: service,
		out:     out,
	}
}

// SetLength stores the typical period length.
func (a *OnboardingAdapter) SetLength(ctx context.Context, days int) error {
	if err := a.service.SetInitialPeriodLength(ctx, days); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Typical period length set to %d day(s)\n", days)
	return nil
}

// SetStart records the last period and logs its days.
func (a *OnboardingAdapter) SetStart(ctx context.Context, start calendar.Date, end *calendar.Date) (*primary.SetPeriodStartResponse, error) {
	resp, err := a.service.SetInitialPeriodStart(ctx, primary.SetPeriodStartRequest{Start: start, End: end})
	if resp == nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Last period recorded: %s to %s\n", resp.Start, resp.End)
	if resp.Batch != nil {
		fmt.Fprintf(a.out, "  %d day(s) marked as period days\n", resp.Batch.Count(period.StatusApplied))
	}
	return resp, err
}

// ShowProfile prints the onboarding profile.
func (a *OnboardingAdapter) ShowProfile(ctx context.Context) (*primary.Profile, error) {
	profile, err := a.service.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if *profile == (primary.Profile{}) {
		fmt.Fprintln(a.out, "Onboarding not started.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Get started:")
		fmt.Fprintln(a.out, "  tpp onboard length 5")
		fmt.Fprintln(a.out, "  tpp onboard start 2024-06-01")
		return profile, nil
	}

	fmt.Fprintf(a.out, "Period length: %s\n", orDash(profile.PeriodLength > 0, fmt.Sprintf("%d day(s)", profile.PeriodLength)))
	fmt.Fprintf(a.out, "Last period:   %s\n", orDash(profile.PeriodStart != "", profile.PeriodStart+" to "+profile.PeriodEnd))
	fmt.Fprintf(a.out, "Updated:       %s\n", orDash(profile.UpdatedAt != "", profile.UpdatedAt))
	return profile, nil
}

// Reset forgets the onboarding profile.
func (a *OnboardingAdapter) Reset(ctx context.Context) error {
	if err := a.service.ResetProfile(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Onboarding reset. Logged days were kept.")
	return nil
}

func orDash(ok bool, s string) string {
	if !ok {
		return "-"
	}
	return s
}
