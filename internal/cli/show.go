package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/wire"
)

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show what was logged for a day",
		Long:  "Show the symptoms logged for a day (default today).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			arg := "today"
			if len(args) > 0 {
				arg = args[0]
			}
			date, err := parseDate(arg)
			if err != nil {
				return err
			}

			adapter, err := wire.CalendarAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.Show(ctx, date)
			return err
		},
	}
}
