package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/config"
	"github.com/example/tpp/internal/db"
	"github.com/example/tpp/internal/ports/secondary"
	"github.com/example/tpp/internal/version"
	"github.com/example/tpp/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the tpp setup and stored data",
		Long: `Health check for tpp.

Validates:
- Config file
- Local database schema version
- Storage backend reachability
- Every stored year decodes

Examples:
  tpp doctor              # Run full health check
  tpp doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			results := []CheckResult{checkConfig(configDir, cfg), checkDatabase(cfg)}

			c, err := wire.Services(ctx)
			if err != nil {
				results = append(results, CheckResult{Name: "Storage", Status: "✗", Details: "  " + err.Error()})
			} else {
				results = append(results, checkStorage(ctx, c.Store, c.StorageDescription))
				results = append(results, checkYears(ctx, c.Years))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println(version.String())
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfig reports whether a config file exists. Defaults are valid, so a
// missing file is only a warning.
func checkConfig(dir string, c *config.Config) CheckResult {
	path := config.Path(dir)
	if _, err := config.Load(dir); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
	if c == nil {
		return CheckResult{Name: "Config", Status: "⚠", Details: "  Config not loaded"}
	}
	if !fileExists(path) {
		return CheckResult{Name: "Config", Status: "⚠", Details: fmt.Sprintf("  %s not found, using defaults (run 'tpp init')", path)}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

// checkDatabase opens the local database and compares its schema version.
func checkDatabase(c *config.Config) CheckResult {
	path := ""
	if c != nil {
		path = c.Storage.SQLitePath
	}
	if path == "" {
		var err error
		if path, err = db.DefaultPath(); err != nil {
			return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
		}
	}

	conn, err := db.Open(path)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer conn.Close()

	v, err := db.CurrentVersion(conn)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if v != db.LatestVersion() {
		return CheckResult{Name: "Database", Status: "✗", Details: fmt.Sprintf("  Schema version %d, expected %d", v, db.LatestVersion())}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

// checkStorage lists keys to prove the backend is reachable.
func checkStorage(ctx context.Context, store secondary.KeyValueStore, desc string) CheckResult {
	if _, err := store.Keys(ctx); err != nil {
		return CheckResult{Name: "Storage", Status: "✗", Details: fmt.Sprintf("  %s: %v", desc, err)}
	}
	return CheckResult{Name: "Storage", Status: "✓"}
}

// checkYears decodes every stored year.
func checkYears(ctx context.Context, repo secondary.YearRepository) CheckResult {
	years, err := repo.Years(ctx)
	if err != nil {
		return CheckResult{Name: "Calendar data", Status: "✗", Details: "  " + err.Error()}
	}

	var bad []string
	for _, y := range years {
		if _, _, err := repo.Load(ctx, y); err != nil {
			bad = append(bad, fmt.Sprintf("  %d: %v", y, err))
		}
	}
	if len(bad) > 0 {
		return CheckResult{Name: "Calendar data", Status: "✗", Details: strings.Join(bad, "\n")}
	}
	return CheckResult{Name: "Calendar data", Status: "✓"}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
