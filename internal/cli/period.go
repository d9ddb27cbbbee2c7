package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/wire"
)

// PeriodCmd returns the period command
func PeriodCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "period [dates...]",
		Short: "Mark several days as period days",
		Long: `Mark days as period days. Each day gets medium flow unless it already
has light, medium or heavy flow logged; other symptoms are kept.

Days that cannot be logged are skipped and reported; the rest are saved.

Examples:
  tpp period 2024-06-01 2024-06-02 2024-06-03
  tpp period --from 2023-12-30 --to 2024-01-02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			dates, err := periodDates(args, from, to)
			if err != nil {
				return err
			}

			adapter, err := wire.CalendarAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.LogPeriod(ctx, dates)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day of a range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of a range (YYYY-MM-DD)")

	return cmd
}

// periodDates combines positional dates with an optional --from/--to range.
func periodDates(args []string, from, to string) ([]calendar.Date, error) {
	dates, err := parseDates(args)
	if err != nil {
		return nil, err
	}

	if from == "" && to == "" {
		if len(dates) == 0 {
			return nil, fmt.Errorf("give at least one date, or --from and --to")
		}
		return dates, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("--from and --to must be used together")
	}

	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	span, err := calendar.DatesBetween(start, end)
	if err != nil {
		return nil, err
	}
	return append(span, dates...), nil
}
