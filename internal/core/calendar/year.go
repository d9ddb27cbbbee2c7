package calendar

import (
	"fmt"

	"github.com/example/tpp/internal/core/symptoms"
)

// YearData is one calendar year of symptom records: 12 month slots, each a
// slice of day slots sized to that month. A nil day slot means nothing was
// logged. The fixed-size array keeps the 12-month shape structural.
type YearData [12][]*symptoms.Symptoms

// InitializeEmptyYear returns a year with every month sized to its real day
// count and every day slot empty.
func InitializeEmptyYear(year int) YearData {
	var data YearData
	for m := 1; m <= 12; m++ {
		data[m-1] = make([]*symptoms.Symptoms, DaysInMonth(m, year))
	}
	return data
}

// Normalize sizes every month slice to its real day count. Blobs written by
// older clients may carry fewer day slots than the month has, or a fixed
// maximum with empty trailing slots. Call Validate first: trimming drops
// whatever sits past the end of the month.
func (y *YearData) Normalize(year int) {
	for m := 1; m <= 12; m++ {
		days := DaysInMonth(m, year)
		switch {
		case len(y[m-1]) < days:
			padded := make([]*symptoms.Symptoms, days)
			copy(padded, y[m-1])
			y[m-1] = padded
		case len(y[m-1]) > days:
			y[m-1] = y[m-1][:days:days]
		}
	}
}

// Symptoms is the strict read: it returns the stored slot (nil when empty) and
// ErrSlotNotFound when the structure has no slot for the coordinate.
func (y *YearData) Symptoms(day, month int) (*symptoms.Symptoms, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrSlotNotFound, month)
	}
	days := y[month-1]
	if day < 1 || day > len(days) {
		return nil, fmt.Errorf("%w: day %d of month %d", ErrSlotNotFound, day, month)
	}
	return days[day-1], nil
}

// SymptomsOrEmpty is the tolerant read used by batch logging: a missing or
// empty slot yields a zero record (flow unset) instead of failing.
func (y *YearData) SymptomsOrEmpty(day, month int) symptoms.Symptoms {
	s, err := y.Symptoms(day, month)
	if err != nil || s == nil {
		return symptoms.Symptoms{}
	}
	return s.Clone()
}

// SetSymptoms replaces the record at d. d.Year only decides how long the month
// may be; the caller picks which YearData to write into.
func (y *YearData) SetSymptoms(d Date, s symptoms.Symptoms) error {
	if err := ValidateDate(d); err != nil {
		return err
	}
	idx := d.Month - 1
	if len(y[idx]) < d.Day {
		grown := make([]*symptoms.Symptoms, DaysInMonth(d.Month, d.Year))
		copy(grown, y[idx])
		y[idx] = grown
	}
	rec := s.Clone()
	y[idx][d.Day-1] = &rec
	return nil
}

// LoggedDates returns every date in the year with a non-empty record, in order.
func (y *YearData) LoggedDates(year int) []Date {
	var out []Date
	for m := 1; m <= 12; m++ {
		for i, s := range y[m-1] {
			if s != nil && !s.IsEmpty() {
				out = append(out, Date{Day: i + 1, Month: m, Year: year})
			}
		}
	}
	return out
}

// Validate checks the structural invariants for year: slots past the end of
// a month may exist but must be empty.
func (y *YearData) Validate(year int) error {
	for m := 1; m <= 12; m++ {
		limit := DaysInMonth(m, year)
		for i := limit; i < len(y[m-1]); i++ {
			if y[m-1][i] != nil {
				return fmt.Errorf("month %d of %d has a record in day slot %d, max %d", m, year, i+1, limit)
			}
		}
	}
	return nil
}
