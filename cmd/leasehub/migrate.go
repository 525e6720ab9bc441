package main

import (
	"leasehub-backend/internal/infrastructure/db"
	"leasehub-backend/internal/logger"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the units, leases and lease_actions tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := opts.openDB()
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			if err := db.Migrate(gdb); err != nil {
				return err
			}
			logger.Info("schema migrated")
			return nil
		},
	}
}
