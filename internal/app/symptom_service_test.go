package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/symptoms"
	"github.com/example/tpp/internal/ports/primary"
)

// ============================================================================
// Test Helper
// ============================================================================

func newTestSymptomService() (*SymptomServiceImpl, *mockYearRepository, *mockActivityWriter) {
	repo := newMockYearRepository()
	activity := &mockActivityWriter{}
	return NewSymptomService(repo, activity, nil), repo, activity
}

// ============================================================================
// LogSymptomsForDate Tests
// ============================================================================

func TestLogSymptomsForDate_RoundTrip(t *testing.T) {
	service, _, activity := newTestSymptomService()
	ctx := context.Background()
	date := calendar.NewDate(14, 2, 2024)
	rec := symptoms.Symptoms{
		Flow:   symptoms.FlowLight,
		Mood:   "happy",
		Cramps: "mild",
		Sleep:  420,
		Notes:  "valentine",
		Extra:  map[string]string{"acne": "none"},
	}

	err := service.LogSymptomsForDate(ctx, primary.LogSymptomsRequest{Date: date, Symptoms: rec})
	require.NoError(t, err)

	got, err := service.GetSymptomsForDate(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, mockActivity{Action: ActionLogSymptoms, DateKey: "2024-02-14", Detail: "flow=LIGHT"}, activity.entries[0])
}

func TestLogSymptomsForDate_SecondLogReplacesWholeRecord(t *testing.T) {
	service, _, _ := newTestSymptomService()
	ctx := context.Background()
	date := calendar.NewDate(1, 7, 2024)

	first := symptoms.Symptoms{Flow: symptoms.FlowHeavy, Mood: "sad", Notes: "first"}
	second := symptoms.Symptoms{Cramps: "strong"}

	require.NoError(t, service.LogSymptomsForDate(ctx, primary.LogSymptomsRequest{Date: date, Symptoms: first}))
	require.NoError(t, service.LogSymptomsForDate(ctx, primary.LogSymptomsRequest{Date: date, Symptoms: second}))

	got, err := service.GetSymptomsForDate(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second, *got, "no fields from the first record may survive")
}

func TestLogSymptomsForDate_InvalidDateNeverTouchesStorage(t *testing.T) {
	service, repo, activity := newTestSymptomService()
	ctx := context.Background()

	err := service.LogSymptomsForDate(ctx, primary.LogSymptomsRequest{
		Date:     calendar.NewDate(31, 4, 2024),
		Symptoms: symptoms.Symptoms{Flow: symptoms.FlowMedium},
	})

	var invalid *calendar.InvalidDateError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Empty(t, repo.loadCalls)
	assert.Empty(t, repo.saveCalls)
	assert.Empty(t, activity.entries)
	assert.Equal(t, "Sorry, this isn't a valid date to log symptoms for!", UserMessage(err))
}

func TestLogSymptomsForDate_InvalidRecordNeverTouchesStorage(t *testing.T) {
	service, repo, activity := newTestSymptomService()

	err := service.LogSymptomsForDate(context.Background(), primary.LogSymptomsRequest{
		Date:     calendar.NewDate(5, 3, 2023),
		Symptoms: symptoms.Symptoms{Flow: symptoms.FlowMedium, Sleep: 1500},
	})

	var invalid *symptoms.InvalidSymptomsError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	var storageErr *StorageError
	assert.False(t, errors.As(err, &storageErr))
	assert.Empty(t, repo.loadCalls)
	assert.Empty(t, repo.saveCalls)
	assert.Empty(t, activity.entries)
	assert.Equal(t, "Sorry, these symptoms can't be logged: check sleep.", UserMessage(err))
}

func TestLogSymptomsForDate_SaveFailure(t *testing.T) {
	service, repo, activity := newTestSymptomService()
	repo.saveErrs[2024] = errStorageDown

	err := service.LogSymptomsForDate(context.Background(), primary.LogSymptomsRequest{
		Date:     calendar.NewDate(2, 1, 2024),
		Symptoms: symptoms.Symptoms{Flow: symptoms.FlowLight},
	})

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "save", storageErr.Op)
	assert.Equal(t, 2024, storageErr.Year)
	assert.ErrorIs(t, err, errStorageDown)
	assert.Equal(t, "Something went wrong. Please try again later.", UserMessage(err))
	assert.Empty(t, activity.entries)
}

func TestLogSymptomsForDate_LoadFailure(t *testing.T) {
	service, repo, _ := newTestSymptomService()
	repo.loadErr = errStorageDown

	err := service.LogSymptomsForDate(context.Background(), primary.LogSymptomsRequest{
		Date: calendar.NewDate(2, 1, 2024),
	})

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "load", storageErr.Op)
	assert.Empty(t, repo.saveCalls)
}

func TestLogSymptomsForDate_ActivityFailureDoesNotFailWrite(t *testing.T) {
	service, repo, activity := newTestSymptomService()
	activity.err = errors.New("activity log full")
	date := calendar.NewDate(3, 3, 2024)

	err := service.LogSymptomsForDate(context.Background(), primary.LogSymptomsRequest{
		Date:     date,
		Symptoms: symptoms.Symptoms{Flow: symptoms.FlowNone},
	})

	require.NoError(t, err)
	require.NotNil(t, repo.stored(date))
}

func TestLogSymptomsForDate_KeepsOtherDaysOfYear(t *testing.T) {
	service, repo, _ := newTestSymptomService()
	kept := calendar.NewDate(9, 9, 2024)
	repo.seed(kept, symptoms.Symptoms{Flow: symptoms.FlowHeavy})

	err := service.LogSymptomsForDate(context.Background(), primary.LogSymptomsRequest{
		Date:     calendar.NewDate(10, 9, 2024),
		Symptoms: symptoms.Symptoms{Flow: symptoms.FlowLight},
	})

	require.NoError(t, err)
	require.NotNil(t, repo.stored(kept))
	assert.Equal(t, symptoms.FlowHeavy, repo.stored(kept).Flow)
}

// ============================================================================
// Read Tests
// ============================================================================

func TestGetCalendarByYear_FreshYear(t *testing.T) {
	service, repo, _ := newTestSymptomService()

	data, err := service.GetCalendarByYear(context.Background(), 2028)

	require.NoError(t, err)
	for m := 1; m <= 12; m++ {
		require.Len(t, data[m-1], calendar.DaysInMonth(m, 2028))
		for _, slot := range data[m-1] {
			assert.Nil(t, slot)
		}
	}
	assert.Empty(t, repo.saveCalls, "reads must not persist")
}

func TestGetSymptomsForDate_NothingLogged(t *testing.T) {
	service, _, _ := newTestSymptomService()

	got, err := service.GetSymptomsForDate(context.Background(), calendar.NewDate(5, 5, 2024))

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetSymptomsForDate_InvalidDate(t *testing.T) {
	service, _, _ := newTestSymptomService()

	_, err := service.GetSymptomsForDate(context.Background(), calendar.NewDate(30, 2, 2024))

	var invalid *calendar.InvalidDateError
	assert.True(t, errors.As(err, &invalid))
}

func TestListPeriodDays(t *testing.T) {
	service, repo, _ := newTestSymptomService()
	repo.seed(calendar.NewDate(1, 1, 2024), symptoms.Symptoms{Flow: symptoms.FlowLight})
	repo.seed(calendar.NewDate(2, 1, 2024), symptoms.Symptoms{Flow: symptoms.FlowNone})
	repo.seed(calendar.NewDate(3, 1, 2024), symptoms.Symptoms{Mood: "ok"})
	repo.seed(calendar.NewDate(4, 2, 2024), symptoms.Symptoms{Flow: symptoms.FlowHeavy})

	days, err := service.ListPeriodDays(context.Background(), 2024)

	require.NoError(t, err)
	assert.Equal(t, []calendar.Date{calendar.NewDate(1, 1, 2024), calendar.NewDate(4, 2, 2024)}, days)
}
