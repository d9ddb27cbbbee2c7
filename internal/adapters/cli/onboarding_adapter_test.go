package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/ports/primary"
)

// mockOnboardingService implements primary.OnboardingService for testing
type mockOnboardingService struct {
	lengthErr error
	startFn   func(ctx context.Context, req primary.SetPeriodStartRequest) (*primary.SetPeriodStartResponse, error)
	profile   primary.Profile
	resetErr  error

	lastLength int
	resets     int
}

func (m *mockOnboardingService) SetInitialPeriodLength(ctx context.Context, days int) error {
	m.lastLength = days
	return m.lengthErr
}

func (m *mockOnboardingService) SetInitialPeriodStart(ctx context.Context, req primary.SetPeriodStartRequest) (*primary.SetPeriodStartResponse, error) {
	return m.startFn(ctx, req)
}

func (m *mockOnboardingService) GetProfile(ctx context.Context) (*primary.Profile, error) {
	p := m.profile
	return &p, nil
}

func (m *mockOnboardingService) ResetProfile(ctx context.Context) error {
	m.resets++
	return m.resetErr
}

func TestOnboardingAdapter_SetLength(t *testing.T) {
	service := &mockOnboardingService{}
	out := &bytes.Buffer{}
	adapter := NewOnboardingAdapter(service, out)

	if err := adapter.SetLength(context.Background(), 6); err != nil {
		t.Fatalf("SetLength failed: %v", err)
	}
	if service.lastLength != 6 {
		t.Errorf("length = %d, want 6", service.lastLength)
	}
	if !strings.Contains(out.String(), "6 day(s)") {
		t.Errorf("unexpected output: %q", out.String())
	}

	service.lengthErr = errors.New("period length must be between 1 and 15 days, got 0")
	if err := adapter.SetLength(context.Background(), 0); err == nil {
		t.Error("expected error")
	}
}

func TestOnboardingAdapter_SetStart(t *testing.T) {
	start := calendar.NewDate(1, 6, 2024)
	end := calendar.NewDate(3, 6, 2024)
	service := &mockOnboardingService{
		startFn: func(ctx context.Context, req primary.SetPeriodStartRequest) (*primary.SetPeriodStartResponse, error) {
			return &primary.SetPeriodStartResponse{
				Start: req.Start,
				End:   end,
				Batch: &primary.BatchResult{Dates: []period.DateOutcome{
					{Status: period.StatusApplied}, {Status: period.StatusApplied}, {Status: period.StatusUnchanged},
				}},
			}, nil
		},
	}
	out := &bytes.Buffer{}

	_, err := NewOnboardingAdapter(service, out).SetStart(context.Background(), start, nil)

	if err != nil {
		t.Fatalf("SetStart failed: %v", err)
	}
	if !strings.Contains(out.String(), "2024-06-01 to 2024-06-03") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if !strings.Contains(out.String(), "2 day(s) marked") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestOnboardingAdapter_ShowProfile(t *testing.T) {
	service := &mockOnboardingService{}
	out := &bytes.Buffer{}
	adapter := NewOnboardingAdapter(service, out)

	adapter.ShowProfile(context.Background())
	if !strings.Contains(out.String(), "Onboarding not started.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	service.profile = primary.Profile{PeriodLength: 5}
	adapter.ShowProfile(context.Background())
	if !strings.Contains(out.String(), "Period length: 5 day(s)") || !strings.Contains(out.String(), "Last period:   -") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestOnboardingAdapter_Reset(t *testing.T) {
	service := &mockOnboardingService{}
	out := &bytes.Buffer{}
	adapter := NewOnboardingAdapter(service, out)

	if err := adapter.Reset(context.Background()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if service.resets != 1 {
		t.Errorf("expected 1 reset, got %d", service.resets)
	}
	if !strings.Contains(out.String(), "Onboarding reset.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	service.resetErr = errors.New("store offline")
	if err := adapter.Reset(context.Background()); err == nil {
		t.Error("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on error, got %q", out.String())
	}
}
