package main

import (
	"fmt"

	"leasehub-backend/internal/config"
	"leasehub-backend/internal/infrastructure/db"
	"leasehub-backend/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type rootOptions struct {
	configFile string
	envPath    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "leasehub",
		Short:         "Lease lifecycle and renewal tracking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile, opts.envPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if err := logger.Initialize(logger.Config{Debug: cfg.Debug}); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to config file (default config.yaml in . or config/)")
	cmd.PersistentFlags().StringVar(&opts.envPath, "env", "config/", "directory holding .env files")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newRenewalCheckCmd(opts),
	)
	return cmd
}

func (o *rootOptions) openDB() (*gorm.DB, error) {
	gdb, err := db.OpenGorm(o.cfg.Database, o.cfg.Debug)
	if err != nil {
		logger.Error(err, zap.String("driver", o.cfg.Database.Driver))
		return nil, fmt.Errorf("open database: %w", err)
	}
	return gdb, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
