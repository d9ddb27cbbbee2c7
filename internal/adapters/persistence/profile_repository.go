package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/tpp/internal/ports/secondary"
)

// ProfileKey is the storage key of the onboarding profile.
const ProfileKey = "onboarding"

// ProfileRepositoryAdapter implements secondary.ProfileRepository over a key-value store.
type ProfileRepositoryAdapter struct {
	store secondary.KeyValueStore
}

// NewProfileRepository creates a new ProfileRepositoryAdapter.
func NewProfileRepository(store secondary.KeyValueStore) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{store: store}
}

// LoadProfile retrieves the stored profile, or nil when none exists.
func (r *ProfileRepositoryAdapter) LoadProfile(ctx context.Context) (*secondary.ProfileRecord, error) {
	raw, ok, err := r.store.Get(ctx, ProfileKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var record secondary.ProfileRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &CorruptValueError{Key: ProfileKey, Err: err}
	}
	if err := validate.Struct(record); err != nil {
		return nil, &CorruptValueError{Key: ProfileKey, Err: err}
	}
	return &record, nil
}

// SaveProfile replaces the stored profile.
func (r *ProfileRepositoryAdapter) SaveProfile(ctx context.Context, profile *secondary.ProfileRecord) error {
	if err := validate.Struct(profile); err != nil {
		return fmt.Errorf("invalid onboarding profile: %w", err)
	}
	b, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode onboarding profile: %w", err)
	}
	return r.store.Set(ctx, ProfileKey, string(b))
}

// DeleteProfile removes the stored profile.
func (r *ProfileRepositoryAdapter) DeleteProfile(ctx context.Context) error {
	return r.store.Delete(ctx, ProfileKey)
}

// Ensure ProfileRepositoryAdapter implements the interface
var _ secondary.ProfileRepository = (*ProfileRepositoryAdapter)(nil)
