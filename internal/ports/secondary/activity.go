package secondary

import "context"

// ActivityWriter records write operations in the activity log.
// Implementations extract the actor from context.
type ActivityWriter interface {
	// Record logs one write. dateKey is the affected date (YYYY-MM-DD) or
	// a range "start..end"; detail is free text.
	Record(ctx context.Context, action, dateKey, detail string) error
}

// ActivityRepository defines the secondary port for activity log persistence.
type ActivityRepository interface {
	// Create persists a new activity entry.
	Create(ctx context.Context, record *ActivityRecord) error

	// GetByID retrieves an entry by its ID.
	GetByID(ctx context.Context, id string) (*ActivityRecord, error)

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ActivityRecord represents an activity entry as stored in persistence.
type ActivityRecord struct {
	ID        string
	Timestamp string // RFC3339, UTC
	ActorID   string // Empty string means null
	Action    string // log_symptoms, log_period, onboarding
	DateKey   string
	Detail    string // Empty string means null
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	Action  string
	DateKey string
	ActorID string
	Limit   int
}
