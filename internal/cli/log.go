package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/core/symptoms"
	"github.com/example/tpp/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var (
		flow     string
		mood     string
		cramps   string
		exercise string
		sleep    time.Duration
		notes    string
		extra    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "log <date>",
		Short: "Log symptoms for a day",
		Long: `Log symptoms for a single day. The new record replaces anything logged
for that day before; fields that are not given are cleared.

Examples:
  tpp log today --flow light --mood tired
  tpp log 2024-06-10 --cramps strong --sleep 6h30m
  tpp log yesterday --extra headache=yes --extra acne=mild`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			flowLevel, err := symptoms.ParseFlowLevel(flow)
			if err != nil {
				return err
			}

			record := symptoms.Symptoms{
				Flow:     flowLevel,
				Mood:     mood,
				Cramps:   cramps,
				Exercise: exercise,
				Sleep:    int(sleep / time.Minute),
				Notes:    notes,
				Extra:    extra,
			}
			if len(record.Extra) == 0 {
				record.Extra = nil
			}

			adapter, err := wire.CalendarAdapter(ctx)
			if err != nil {
				return err
			}
			return adapter.LogSymptoms(ctx, date, record)
		},
	}

	cmd.Flags().StringVar(&flow, "flow", "", "Flow: none, light, medium or heavy")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood")
	cmd.Flags().StringVar(&cramps, "cramps", "", "Cramps")
	cmd.Flags().StringVar(&exercise, "exercise", "", "Exercise")
	cmd.Flags().DurationVar(&sleep, "sleep", 0, "Time slept, e.g. 7h30m")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().StringToStringVar(&extra, "extra", nil, "Other symptoms as key=value")

	return cmd
}
