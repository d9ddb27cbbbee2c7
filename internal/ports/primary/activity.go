package primary

import "context"

// ActivityService defines the primary port for activity log operations.
type ActivityService interface {
	// ListEntries retrieves activity entries matching the given filters.
	ListEntries(ctx context.Context, filters ActivityFilters) ([]*ActivityEntry, error)

	// PruneEntries deletes entries older than the specified number of days.
	PruneEntries(ctx context.Context, olderThanDays int) (int, error)
}

// ActivityEntry represents an activity log entry at the port boundary.
type ActivityEntry struct {
	ID        string
	Timestamp string
	ActorID   string
	Action    string
	DateKey   string
	Detail    string
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	Action  string
	DateKey string
	ActorID string
	Limit   int
}
