// Package persistence maps typed year and profile data onto a
// secondary.KeyValueStore. It owns every serialization detail of the stored
// values; nothing outside this package sees the JSON shape.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/symptoms"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CorruptValueError reports a stored value that cannot be decoded into its type.
type CorruptValueError struct {
	Key string
	Err error
}

func (e *CorruptValueError) Error() string {
	return fmt.Sprintf("stored value for key %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptValueError) Unwrap() error { return e.Err }

// EncodeYear serializes data as a JSON array of 12 month arrays whose slots
// are null or a symptom object.
func EncodeYear(year int, data calendar.YearData) (string, error) {
	if err := validateYear(year, data); err != nil {
		return "", err
	}

	months := make([][]*symptoms.Symptoms, 12)
	for m := range data {
		months[m] = data[m]
		if months[m] == nil {
			months[m] = []*symptoms.Symptoms{}
		}
	}

	b, err := json.Marshal(months)
	if err != nil {
		return "", fmt.Errorf("failed to encode year %d: %w", year, err)
	}
	return string(b), nil
}

// DecodeYear parses a stored year value. Short months are padded and empty
// trailing slots past the end of a month are dropped.
func DecodeYear(year int, raw string) (calendar.YearData, error) {
	var months [][]*symptoms.Symptoms
	if err := json.Unmarshal([]byte(raw), &months); err != nil {
		return calendar.YearData{}, err
	}
	if len(months) != 12 {
		return calendar.YearData{}, fmt.Errorf("expected 12 months, got %d", len(months))
	}

	var data calendar.YearData
	copy(data[:], months)
	if err := validateYear(year, data); err != nil {
		return calendar.YearData{}, err
	}
	data.Normalize(year)
	return data, nil
}

func validateYear(year int, data calendar.YearData) error {
	if err := data.Validate(year); err != nil {
		return err
	}
	for m, days := range data {
		for d, s := range days {
			if s == nil {
				continue
			}
			if err := s.Validate(); err != nil {
				return fmt.Errorf("invalid symptoms for %04d-%02d-%02d: %w", year, m+1, d+1, err)
			}
		}
	}
	return nil
}
