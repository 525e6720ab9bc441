package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"leasehub-backend/internal/app"
	"leasehub-backend/internal/infrastructure/cache"
	"leasehub-backend/internal/infrastructure/db"
	"leasehub-backend/internal/infrastructure/metrics"
	"leasehub-backend/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			gdb, err := opts.openDB()
			if err != nil {
				return err
			}
			defer closeDB(gdb)
			if migrate {
				if err := db.Migrate(gdb); err != nil {
					return err
				}
			}

			var rdb *redis.Client
			if cfg.Idempotency.Enabled {
				if rdb, err = cache.OpenRedis(cfg.Redis); err != nil {
					return err
				}
				defer rdb.Close()
			}

			loc, err := cfg.Renewal.Location()
			if err != nil {
				return err
			}
			e := app.NewRouter(app.Deps{
				DB:             gdb,
				Redis:          rdb,
				Metrics:        metrics.New(),
				Location:       loc,
				IdempotencyTTL: cfg.Idempotency.TTL,
				StorageTimeout: cfg.Database.QueryTimeout,
			})
			srv := &http.Server{
				Addr:         ":" + strconv.Itoa(cfg.Server.Port),
				Handler:      e,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run schema migration before serving")
	return cmd
}
