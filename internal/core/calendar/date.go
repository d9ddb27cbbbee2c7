// Package calendar contains the pure calendar logic behind symptom logging:
// date validation, the per-year symptom structure and slot access.
// Nothing here performs I/O.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar coordinate. Day and Month are 1-based (January = 1).
// A Date is not guaranteed valid; check with Valid or IsValidDate.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewDate builds a Date without validating it.
func NewDate(day, month, year int) Date {
	return Date{Day: day, Month: month, Year: year}
}

// FromTime converts a time to its calendar date in the time's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Day: d, Month: int(m), Year: y}
}

// ParseDate parses YYYY-MM-DD. Only the shape is checked here, so "2024-04-31"
// parses and is rejected later by the validator like any other bad coordinate.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}

	return Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

// String formats the date as YYYY-MM-DD. This is also the activity log key.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether the date exists on the Gregorian calendar.
func (d Date) Valid() bool {
	return IsValidDate(d.Day, d.Month, d.Year)
}

// Time returns midnight UTC of the date. Only meaningful for valid dates.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsLeapYear applies the Gregorian rule: divisible by 4, except centuries not divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in month of year, or 0 for a month outside [1,12].
func DaysInMonth(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month-1]
}

// IsValidDate reports whether (day, month, year) is a real calendar date.
func IsValidDate(day, month, year int) bool {
	return day >= 1 && day <= DaysInMonth(month, year)
}

// DatesBetween returns every date from start to end inclusive.
func DatesBetween(start, end Date) ([]Date, error) {
	if !start.Valid() {
		return nil, &InvalidDateError{Date: start, Reason: invalidReason(start)}
	}
	if !end.Valid() {
		return nil, &InvalidDateError{Date: end, Reason: invalidReason(end)}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s is before start %s", end, start)
	}

	var dates []Date
	for d := start; !end.Before(d); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates, nil
}
