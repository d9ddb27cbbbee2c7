package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/tpp/internal/ports/primary"
)

// ActivityAdapter translates CLI operations to ActivityService calls.
type ActivityAdapter struct {
	service primary.ActivityService
	out     io.Writer
}

// NewActivityAdapter creates a new ActivityAdapter with the given service.
func NewActivityAdapter(service primary.ActivityService, out io.Writer) *ActivityAdapter {
	return &ActivityAdapter{
		service: service,
		out:     out,
	}
}

// Tail prints matching entries, oldest first.
func (a *ActivityAdapter) Tail(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	entries, err := a.service.ListEntries(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity found.")
		return entries, nil
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		actor := e.ActorID
		if actor == "" {
			actor = "-"
		}
		dateKey := e.DateKey
		if dateKey == "" {
			dateKey = "-"
		}
		fmt.Fprintf(a.out, "%s | %-10s | %s %-12s | %s", formatTimestamp(e.Timestamp), actor, actionIcon(e.Action), e.Action, dateKey)
		if e.Detail != "" {
			fmt.Fprintf(a.out, " | %s", e.Detail)
		}
		fmt.Fprintln(a.out)
	}
	return entries, nil
}

// Prune deletes entries older than days.
func (a *ActivityAdapter) Prune(ctx context.Context, days int) (int, error) {
	count, err := a.service.PruneEntries(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}

	if count == 0 {
		fmt.Fprintf(a.out, "No activity older than %d days found.\n", days)
	} else {
		fmt.Fprintf(a.out, "Pruned %d entries older than %d days.\n", count, days)
	}
	return count, nil
}

func actionIcon(action string) string {
	switch action {
	case "log_symptoms":
		return "~"
	case "log_period":
		return "●"
	case "onboarding":
		return "+"
	default:
		return "?"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}
