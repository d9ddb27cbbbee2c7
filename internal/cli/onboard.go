package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/wire"
)

// OnboardCmd returns the onboard command
func OnboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up your typical period length and last period",
	}

	cmd.AddCommand(onboardLengthCmd())
	cmd.AddCommand(onboardStartCmd())
	cmd.AddCommand(onboardShowCmd())
	cmd.AddCommand(onboardResetCmd())

	return cmd
}

func onboardLengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "length <days>",
		Short: "Set your typical period length in days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number of days %q", args[0])
			}

			adapter, err := wire.OnboardingAdapter(ctx)
			if err != nil {
				return err
			}
			return adapter.SetLength(ctx, days)
		},
	}
}

func onboardStartCmd() *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "start <date>",
		Short: "Record when your last period started",
		Long: `Record when your last period started and log its days.

Without --end, the period is assumed to last your typical length (see
'tpp onboard length'), stopping at today.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			start, err := parseDate(args[0])
			if err != nil {
				return err
			}
			var endDate *calendar.Date
			if end != "" {
				d, err := parseDate(end)
				if err != nil {
					return err
				}
				endDate = &d
			}

			adapter, err := wire.OnboardingAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.SetStart(ctx, start, endDate)
			return err
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "Last day of that period (YYYY-MM-DD)")

	return cmd
}

func onboardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the onboarding profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			adapter, err := wire.OnboardingAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.ShowProfile(ctx)
			return err
		},
	}
}

func onboardResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the onboarding profile (logged days are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			adapter, err := wire.OnboardingAdapter(ctx)
			if err != nil {
				return err
			}
			return adapter.Reset(ctx)
		},
	}
}
