package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tpp/internal/config"
	"github.com/example/tpp/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the tpp config and local database",
		Long: `Write ~/.tpp/config.yaml (unless it exists) and initialize the local
SQLite database with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(configDir)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if backend != "" {
					cfg.Storage.Backend = backend
				}
				if err := config.SaveConfig(configDir, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			} else {
				fmt.Printf("Config already exists at %s\n", path)
			}

			dbPath := cfg.Storage.SQLitePath
			if dbPath == "" {
				var err error
				if dbPath, err = db.DefaultPath(); err != nil {
					return err
				}
			}
			conn, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			fmt.Printf("✓ Database initialized at %s\n", dbPath)

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  tpp onboard length 5")
			fmt.Println("  tpp onboard start 2024-06-01")
			fmt.Println("  tpp log today --flow light")

			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Storage backend for a new config: sqlite, postgres or s3")

	return cmd
}
