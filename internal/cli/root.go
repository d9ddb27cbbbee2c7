// Package cli provides CLI commands for the tpp application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/tpp/internal/config"
	"github.com/example/tpp/internal/ctxutil"
	"github.com/example/tpp/internal/logging"
	"github.com/example/tpp/internal/version"
	"github.com/example/tpp/internal/wire"
)

var (
	verbose   bool
	configDir string

	// Set in PersistentPreRunE for every command.
	cfg    *config.Config
	logger *zap.Logger
)

// RootCmd returns the tpp root command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tpp",
		Short:   "tpp - period and symptom tracker",
		Version: version.String(),
		Long: `tpp keeps a daily log of period flow and symptoms, one calendar year per record.

Calendar data lives in a local SQLite database by default, or in PostgreSQL or
S3 when configured in ~/.tpp/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configDir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get home directory: %w", err)
				}
				configDir = home
			}

			var err error
			cfg, err = config.Load(configDir)
			if err != nil {
				return err
			}

			logger, err = logging.New(cfg.LogLevel, verbose)
			if err != nil {
				return err
			}

			wire.Configure(cfg, logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding .tpp/config.yaml (default: home directory)")

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(DoctorCmd())
	rootCmd.AddCommand(LogCmd())
	rootCmd.AddCommand(PeriodCmd())
	rootCmd.AddCommand(ShowCmd())
	rootCmd.AddCommand(CalendarCmd())
	rootCmd.AddCommand(ExportCmd())
	rootCmd.AddCommand(OnboardCmd())
	rootCmd.AddCommand(HistoryCmd())

	return rootCmd
}

// NewContext creates a context.Background() with the configured device ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if cfg != nil && cfg.DeviceID != "" {
		return ctxutil.WithDevice(ctx, cfg.DeviceID)
	}
	return ctx
}

// ErrorMessage returns the text to show for err. Storage and batch failures
// carry a message for the user; their cause stays in the log.
func ErrorMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}

// LogCause writes the underlying error to the log when the user-facing
// message hides it.
func LogCause(err error) {
	if logger == nil || ErrorMessage(err) == err.Error() {
		return
	}
	logger.Error("command failed", zap.Error(err))
}

// Shutdown closes the storage opened by the command and flushes the logger.
// It must run whether or not the command failed.
func Shutdown() error {
	err := wire.Shutdown()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}
