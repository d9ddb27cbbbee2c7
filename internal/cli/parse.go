package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/tpp/internal/core/calendar"
)

// now is replaced in tests.
var now = time.Now

// parseDate accepts YYYY-MM-DD, "today" or "yesterday". Calendar validity is
// left to the services so the user sees their message.
func parseDate(s string) (calendar.Date, error) {
	today := calendar.FromTime(now())
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return calendar.ParseDate(s)
}

// parseDates parses each argument as a date, in order.
func parseDates(args []string) ([]calendar.Date, error) {
	dates := make([]calendar.Date, 0, len(args))
	for _, a := range args {
		d, err := parseDate(a)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// parseYear parses a four-digit year, defaulting to the current year when s is empty.
func parseYear(s string) (int, error) {
	if s == "" {
		return now().Year(), nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}
