package app

import (
	"context"
	"errors"
	"sync"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/symptoms"
	"github.com/example/tpp/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces.
var (
	_ secondary.YearRepository    = (*mockYearRepository)(nil)
	_ secondary.ActivityWriter    = (*mockActivityWriter)(nil)
	_ secondary.ProfileRepository = (*mockProfileRepository)(nil)
)

var errStorageDown = errors.New("storage unavailable")

// mockYearRepository implements secondary.YearRepository for testing.
// Stored years are deep-copied so tests observe only what was saved.
// It is safe for the concurrent saves of a period batch.
type mockYearRepository struct {
	mu        sync.Mutex
	years     map[int]calendar.YearData
	loadErr   error
	saveErrs  map[int]error
	loadCalls []int
	saveCalls []int
}

func newMockYearRepository() *mockYearRepository {
	return &mockYearRepository{
		years:    make(map[int]calendar.YearData),
		saveErrs: make(map[int]error),
	}
}

func (m *mockYearRepository) Load(ctx context.Context, year int) (calendar.YearData, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, year)
	if m.loadErr != nil {
		return calendar.YearData{}, false, m.loadErr
	}
	data, ok := m.years[year]
	if !ok {
		return calendar.YearData{}, false, nil
	}
	return copyYear(data), true, nil
}

func (m *mockYearRepository) Save(ctx context.Context, year int, data calendar.YearData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls = append(m.saveCalls, year)
	if err := m.saveErrs[year]; err != nil {
		return err
	}
	m.years[year] = copyYear(data)
	return nil
}

func (m *mockYearRepository) Years(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for y := range m.years {
		out = append(out, y)
	}
	return out, nil
}

// stored returns the saved record for d, or nil.
func (m *mockYearRepository) stored(d calendar.Date) *symptoms.Symptoms {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.years[d.Year]
	if !ok {
		return nil
	}
	s, err := data.Symptoms(d.Day, d.Month)
	if err != nil {
		return nil
	}
	return s
}

func (m *mockYearRepository) seed(d calendar.Date, s symptoms.Symptoms) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.years[d.Year]
	if !ok {
		data = calendar.InitializeEmptyYear(d.Year)
	}
	if err := data.SetSymptoms(d, s); err != nil {
		panic(err)
	}
	m.years[d.Year] = data
}

func copyYear(src calendar.YearData) calendar.YearData {
	var dst calendar.YearData
	for m := range src {
		if src[m] == nil {
			continue
		}
		dst[m] = make([]*symptoms.Symptoms, len(src[m]))
		for d, s := range src[m] {
			if s != nil {
				c := s.Clone()
				dst[m][d] = &c
			}
		}
	}
	return dst
}

// mockActivityWriter implements secondary.ActivityWriter for testing.
type mockActivityWriter struct {
	mu      sync.Mutex
	entries []mockActivity
	err     error
}

type mockActivity struct {
	Action  string
	DateKey string
	Detail  string
}

func (m *mockActivityWriter) Record(ctx context.Context, action, dateKey, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, mockActivity{Action: action, DateKey: dateKey, Detail: detail})
	return nil
}

// mockProfileRepository implements secondary.ProfileRepository for testing.
type mockProfileRepository struct {
	profile   *secondary.ProfileRecord
	loadErr   error
	saveErr   error
	deleteErr error
}

func (m *mockProfileRepository) LoadProfile(ctx context.Context) (*secondary.ProfileRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.profile == nil {
		return nil, nil
	}
	cp := *m.profile
	return &cp, nil
}

func (m *mockProfileRepository) SaveProfile(ctx context.Context, profile *secondary.ProfileRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *profile
	m.profile = &cp
	return nil
}

func (m *mockProfileRepository) DeleteProfile(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.profile = nil
	return nil
}
