package persistence

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/ports/secondary"
)

// YearRepositoryAdapter implements secondary.YearRepository over a key-value
// store, one key per year.
type YearRepositoryAdapter struct {
	store secondary.KeyValueStore
}

// NewYearRepository creates a new YearRepositoryAdapter.
func NewYearRepository(store secondary.KeyValueStore) *YearRepositoryAdapter {
	return &YearRepositoryAdapter{store: store}
}

// YearKey returns the storage key for year.
func YearKey(year int) string {
	return strconv.Itoa(year)
}

// Load retrieves the stored year.
func (r *YearRepositoryAdapter) Load(ctx context.Context, year int) (calendar.YearData, bool, error) {
	key := YearKey(year)
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return calendar.YearData{}, false, err
	}
	if !ok {
		return calendar.YearData{}, false, nil
	}

	data, err := DecodeYear(year, raw)
	if err != nil {
		return calendar.YearData{}, false, &CorruptValueError{Key: key, Err: err}
	}
	return data, true, nil
}

// Save replaces the stored year.
func (r *YearRepositoryAdapter) Save(ctx context.Context, year int, data calendar.YearData) error {
	raw, err := EncodeYear(year, data)
	if err != nil {
		return fmt.Errorf("refusing to save year %d: %w", year, err)
	}
	return r.store.Set(ctx, YearKey(year), raw)
}

// Years lists the stored years in ascending order. Keys that are not years
// (such as the onboarding profile) are ignored.
func (r *YearRepositoryAdapter) Years(ctx context.Context) ([]int, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, err
	}

	var years []int
	for _, k := range keys {
		y, err := strconv.Atoi(k)
		if err != nil || YearKey(y) != k {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// Ensure YearRepositoryAdapter implements the interface
var _ secondary.YearRepository = (*YearRepositoryAdapter)(nil)
