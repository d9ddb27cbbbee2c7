package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/ports/primary"
	"github.com/example/tpp/internal/ports/secondary"
)

// MaxPeriodLength is the longest typical period length onboarding accepts.
const MaxPeriodLength = 15

// OnboardingServiceImpl implements the OnboardingService interface.
type OnboardingServiceImpl struct {
	profileRepo secondary.ProfileRepository
	periods     primary.PeriodService
	activity    secondary.ActivityWriter
	logger      *zap.Logger
	now         func() time.Time
}

// NewOnboardingService creates a new OnboardingService with injected dependencies.
func NewOnboardingService(profileRepo secondary.ProfileRepository, periods primary.PeriodService, activity secondary.ActivityWriter, logger *zap.Logger) *OnboardingServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingServiceImpl{
		profileRepo: profileRepo,
		periods:     periods,
		activity:    activity,
		logger:      logger,
		now:         time.Now,
	}
}

// SetInitialPeriodLength stores the typical period length.
func (s *OnboardingServiceImpl) SetInitialPeriodLength(ctx context.Context, days int) error {
	if days < 1 || days > MaxPeriodLength {
		return fmt.Errorf("period length must be between 1 and %d days, got %d", MaxPeriodLength, days)
	}

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return err
	}
	profile.PeriodLength = days

	if err := s.saveProfile(ctx, profile); err != nil {
		return err
	}

	recordActivity(ctx, s.activity, s.logger, ActionOnboarding, "", fmt.Sprintf("period_length=%d", days))
	return nil
}

// SetInitialPeriodStart resolves the last period's range, logs every day of it
// as a period batch and stores the range in the profile. A partial batch
// failure is returned together with the response.
func (s *OnboardingServiceImpl) SetInitialPeriodStart(ctx context.Context, req primary.SetPeriodStartRequest) (*primary.SetPeriodStartResponse, error) {
	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	today := calendar.FromTime(s.now())
	start, end, err := period.ResolveRange(req.Start, req.End, profile.PeriodLength, today)
	if err != nil {
		return nil, err
	}

	dates, err := calendar.DatesBetween(start, end)
	if err != nil {
		return nil, err
	}

	batch, batchErr := s.periods.LogMultipleDayPeriod(ctx, dates)
	if batch == nil {
		return nil, batchErr
	}

	// The period length can be derived when the user picked an explicit range.
	if profile.PeriodLength == 0 && req.End != nil {
		profile.PeriodLength = min(len(dates), MaxPeriodLength)
	}
	profile.PeriodStart = start.String()
	profile.PeriodEnd = end.String()

	if err := s.saveProfile(ctx, profile); err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, s.logger, ActionOnboarding, batchKey(dates), "period_start")

	return &primary.SetPeriodStartResponse{
		Start: start,
		End:   end,
		Batch: batch,
	}, batchErr
}

// GetProfile returns the stored onboarding profile.
func (s *OnboardingServiceImpl) GetProfile(ctx context.Context) (*primary.Profile, error) {
	record, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	return &primary.Profile{
		PeriodLength: record.PeriodLength,
		PeriodStart:  record.PeriodStart,
		PeriodEnd:    record.PeriodEnd,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}

// ResetProfile deletes the onboarding profile so onboarding can start over.
// Calendar data logged during onboarding stays in place.
func (s *OnboardingServiceImpl) ResetProfile(ctx context.Context) error {
	if err := s.profileRepo.DeleteProfile(ctx); err != nil {
		s.logger.Error("failed to delete onboarding profile", zap.Error(err))
		return fmt.Errorf("failed to reset onboarding profile: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, ActionOnboarding, "", "reset")
	return nil
}

// Helper methods

func (s *OnboardingServiceImpl) loadProfile(ctx context.Context) (*secondary.ProfileRecord, error) {
	record, err := s.profileRepo.LoadProfile(ctx)
	if err != nil {
		s.logger.Error("failed to load onboarding profile", zap.Error(err))
		return nil, fmt.Errorf("failed to load onboarding profile: %w", err)
	}
	if record == nil {
		record = &secondary.ProfileRecord{}
	}
	return record, nil
}

func (s *OnboardingServiceImpl) saveProfile(ctx context.Context, record *secondary.ProfileRecord) error {
	record.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.profileRepo.SaveProfile(ctx, record); err != nil {
		s.logger.Error("failed to save onboarding profile", zap.Error(err))
		return fmt.Errorf("failed to save onboarding profile: %w", err)
	}
	return nil
}

// Ensure OnboardingServiceImpl implements the interface.
var _ primary.OnboardingService = (*OnboardingServiceImpl)(nil)
