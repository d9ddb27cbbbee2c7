// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/tpp/internal/core/calendar"
)

// KeyValueStore is the raw device storage the symptom data lives in.
// Values are opaque strings; the store never interprets them.
type KeyValueStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set atomically replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)
}

// YearRepository is the persistence gateway for year data. It owns
// serialization; callers only see typed YearData.
type YearRepository interface {
	// Load returns the stored year. found is false when nothing was ever saved.
	Load(ctx context.Context, year int) (data calendar.YearData, found bool, err error)

	// Save replaces the stored year in full.
	Save(ctx context.Context, year int, data calendar.YearData) error

	// Years lists every year that has stored data, ascending.
	Years(ctx context.Context) ([]int, error)
}

// ProfileRepository persists the onboarding profile.
type ProfileRepository interface {
	// LoadProfile returns the stored profile or nil when none was saved.
	LoadProfile(ctx context.Context) (*ProfileRecord, error)

	// SaveProfile replaces the stored profile.
	SaveProfile(ctx context.Context, profile *ProfileRecord) error

	// DeleteProfile removes the stored profile. Deleting a missing profile is not an error.
	DeleteProfile(ctx context.Context) error
}

// ProfileRecord is the onboarding profile as stored in persistence.
type ProfileRecord struct {
	PeriodLength int    `json:"periodLength,omitempty" validate:"gte=0,lte=15"`
	PeriodStart  string `json:"periodStart,omitempty"` // YYYY-MM-DD, empty means skipped
	PeriodEnd    string `json:"periodEnd,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}
