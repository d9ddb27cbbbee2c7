package app

import (
	"context"
	"fmt"

	"github.com/example/tpp/internal/ports/primary"
	"github.com/example/tpp/internal/ports/secondary"
)

// ActivityServiceImpl implements the ActivityService interface.
type ActivityServiceImpl struct {
	activityRepo secondary.ActivityRepository
}

// NewActivityService creates a new ActivityService with injected dependencies.
func NewActivityService(activityRepo secondary.ActivityRepository) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		activityRepo: activityRepo,
	}
}

// ListEntries retrieves activity entries matching the given filters.
func (s *ActivityServiceImpl) ListEntries(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	records, err := s.activityRepo.List(ctx, secondary.ActivityFilters{
		Action:  filters.Action,
		DateKey: filters.DateKey,
		ActorID: filters.ActorID,
		Limit:   filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*primary.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToEntry(r)
	}
	return entries, nil
}

// PruneEntries deletes entries older than the specified number of days.
func (s *ActivityServiceImpl) PruneEntries(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("days must be positive, got %d", olderThanDays)
	}
	return s.activityRepo.PruneOlderThan(ctx, olderThanDays)
}

// Helper methods

func (s *ActivityServiceImpl) recordToEntry(r *secondary.ActivityRecord) *primary.ActivityEntry {
	return &primary.ActivityEntry{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		ActorID:   r.ActorID,
		Action:    r.Action,
		DateKey:   r.DateKey,
		Detail:    r.Detail,
	}
}

// Ensure ActivityServiceImpl implements the interface.
var _ primary.ActivityService = (*ActivityServiceImpl)(nil)
