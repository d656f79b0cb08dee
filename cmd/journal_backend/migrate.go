package main

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/erp_journal_engine/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.MigrateUp(logger, cfg.DatabaseURL, cfg.MigrationsPath)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Example: `  # Roll back the latest migration
  journal_backend migrate down

  # Roll back everything
  journal_backend migrate down --steps 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return database.MigrateDown(logger, cfg.DatabaseURL, cfg.MigrationsPath, steps)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back, 0 for all")
}
