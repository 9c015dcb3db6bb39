package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/bookshelf-server/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations to DATABASE_DSN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(cmd.Context(), a.cfg.Database.DSN); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			a.logger.Info("migrations applied")
			return nil
		},
	}
}
