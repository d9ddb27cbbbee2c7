package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/ports/primary"
	"github.com/example/tpp/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View the activity log",
		Long:  "View and prune the log of writes made from this device.",
	}

	cmd.AddCommand(historyTailCmd())
	cmd.AddCommand(historyPruneCmd())

	return cmd
}

func historyTailCmd() *cobra.Command {
	var (
		limit  int
		action string
		date   string
		device string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent activity",
		Long:  "Show recent activity log entries (default 50)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if limit <= 0 {
				limit = 50
			}
			filters := primary.ActivityFilters{
				Action:  action,
				ActorID: device,
				Limit:   limit,
			}
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				filters.DateKey = d.String()
			}

			adapter, err := wire.ActivityAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.Tail(ctx, filters)
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Number of entries to show")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action (log_symptoms, log_period, onboarding)")
	cmd.Flags().StringVar(&date, "date", "", "Filter by logged date")
	cmd.Flags().StringVar(&device, "device", "", "Filter by device ID")

	return cmd
}

func historyPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old activity entries",
		Long:  "Delete activity entries older than the specified number of days (default 90)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if days <= 0 {
				days = 90
			}

			adapter, err := wire.ActivityAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.Prune(ctx, days)
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 90, "Delete entries older than this many days")

	return cmd
}
