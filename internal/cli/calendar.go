package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/tpp/internal/adapters/cli"
	"github.com/example/tpp/internal/wire"
)

// CalendarCmd returns the calendar command
func CalendarCmd() *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "calendar [year]",
		Short: "Print a year or month of logged days",
		Long: `Print a calendar grid marking flow and other logged symptoms.

Examples:
  tpp calendar              # Current year
  tpp calendar 2024 -m 2    # February 2024`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			var yearArg string
			if len(args) > 0 {
				yearArg = args[0]
			}
			year, err := parseYear(yearArg)
			if err != nil {
				return err
			}

			adapter, err := wire.CalendarAdapter(ctx)
			if err != nil {
				return err
			}
			_, err = adapter.Calendar(ctx, year, month)
			return err
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Only print this month (1-12)")

	return cmd
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [year]",
		Short: "Export logged days of a year as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			var yearArg string
			if len(args) > 0 {
				yearArg = args[0]
			}
			year, err := parseYear(yearArg)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			adapter, err := wire.CalendarAdapterWithOutput(ctx, out)
			if err != nil {
				return err
			}
			doc, err := adapter.Export(ctx, year, format)
			if err != nil {
				return err
			}
			if output != "" {
				fmt.Printf("✓ Exported %d day(s) of %d to %s\n", len(doc.Days), year, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", cliadapter.FormatJSON, "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
