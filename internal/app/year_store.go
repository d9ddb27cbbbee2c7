package app

import (
	"context"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/ports/secondary"
)

// getCalendarByYear is the read-through load shared by the services: a year
// that was never saved comes back fully initialized and empty.
func getCalendarByYear(ctx context.Context, repo secondary.YearRepository, year int) (calendar.YearData, error) {
	data, found, err := repo.Load(ctx, year)
	if err != nil {
		return calendar.YearData{}, &StorageError{Op: "load", Year: year, Err: err}
	}
	if !found {
		return calendar.InitializeEmptyYear(year), nil
	}
	data.Normalize(year)
	return data, nil
}

func saveYear(ctx context.Context, repo secondary.YearRepository, year int, data calendar.YearData) error {
	if err := repo.Save(ctx, year, data); err != nil {
		return &StorageError{Op: "save", Year: year, Err: err}
	}
	return nil
}
