package main

import (
	"database/sql"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentDesk/internal/infra/storage/migrations"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}

	cmd.AddCommand(
		migrateSubcommand(configPath, "up", "Apply all pending migrations", migrations.Up),
		migrateSubcommand(configPath, "down", "Roll back the latest migration", migrations.Down),
		migrateSubcommand(configPath, "status", "Print migration status", migrations.Status),
	)

	return cmd
}

func migrateSubcommand(configPath *string, use, short string, run func(db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath, false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := run(a.db); err != nil {
				return err
			}

			color.Green("migrate %s: done", use)
			return nil
		},
	}
}
