package http

import (
	"net/http"
	"time"

	"leasehub-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

type RouterConfig struct {
	Health   *Handler
	Units    *UnitHandler
	Leases   *LeaseHandler
	Renewals *RenewalHandler
	Metrics  http.Handler

	// Redis is nil when idempotency is disabled.
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	StorageTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Use(echomw.Recover(), middleware.RequestLogger(), middleware.Actor())

	e.GET("/health", cfg.Health.Health)
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	api := e.Group("", middleware.StorageTimeout(cfg.StorageTimeout))
	if cfg.Redis != nil {
		api.Use(middleware.Idempotency(cfg.Redis, cfg.IdempotencyTTL))
	}

	api.POST("/units", cfg.Units.CreateUnit)
	api.GET("/units/:unit_id", cfg.Units.GetUnit)

	api.POST("/leases", cfg.Leases.CreateLease)
	api.GET("/leases/:lease_id", cfg.Leases.GetLease)
	api.GET("/leases/:lease_id/actions", cfg.Leases.ListActions)
	api.GET("/leases/:lease_id/audit", cfg.Leases.Audit)
	api.POST("/leases/:lease_id/actions", cfg.Leases.ApplyAction)
	api.POST("/leases/:lease_id/transfer", cfg.Leases.Transfer)

	api.GET("/renewals/alerts", cfg.Renewals.Alerts)
	return e
}
