package app

import (
	"context"
	"time"

	httpadp "leasehub-backend/internal/adapter/http"
	"leasehub-backend/internal/adapter/repository/gormrepo"
	"leasehub-backend/internal/infrastructure/metrics"
	ucLease "leasehub-backend/internal/usecase/lease"
	ucAction "leasehub-backend/internal/usecase/leaseaction"
	ucRenewal "leasehub-backend/internal/usecase/renewal"
	ucTransfer "leasehub-backend/internal/usecase/transfer"
	ucUnit "leasehub-backend/internal/usecase/unit"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client // nil disables idempotency
	Metrics *metrics.Metrics
	Now     func() time.Time
	// Location is the calendar the renewal feed counts days in and default
	// action dates fall on.
	Location *time.Location

	IdempotencyTTL time.Duration
	StorageTimeout time.Duration
}

type Usecases struct {
	Units     *ucUnit.Usecase
	Leases    *ucLease.Usecase
	Actions   *ucAction.Usecase
	Transfers *ucTransfer.Usecase
	Renewals  *ucRenewal.Usecase
}

func NewUsecases(d Deps) *Usecases {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	leases := gormrepo.NewLeaseRepository(d.DB)
	actions := gormrepo.NewLeaseActionRepository(d.DB)
	units := gormrepo.NewUnitRepository(d.DB)
	tx := gormrepo.NewGormUoW(d.DB)

	return &Usecases{
		Units:     ucUnit.NewUsecase(units, leases),
		Leases:    ucLease.NewUsecase(leases, actions, tx),
		Actions:   ucAction.NewUsecase(tx, now, d.Metrics).WithCalendar(d.Location),
		Transfers: ucTransfer.NewUsecase(tx, now, d.Metrics),
		Renewals:  ucRenewal.NewUsecase(leases, LocalCalendar(now, d.Location), d.Metrics),
	}
}

// LocalCalendar reports the wall-clock date and time in loc as if it were
// UTC, so day arithmetic on UTC-midnight lease dates uses loc's calendar.
func LocalCalendar(now func() time.Time, loc *time.Location) func() time.Time {
	if loc == nil || loc == time.UTC {
		return now
	}
	return func() time.Time {
		t := now().In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
}

func NewRouter(d Deps) *echo.Echo {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	uc := NewUsecases(d)
	return httpadp.NewRouter(httpadp.RouterConfig{
		Health:         httpadp.NewHandler(pinger(d.DB)),
		Units:          httpadp.NewUnitHandler(uc.Units),
		Leases:         httpadp.NewLeaseHandler(uc.Leases, uc.Actions, uc.Transfers),
		Renewals:       httpadp.NewRenewalHandler(uc.Renewals),
		Metrics:        d.Metrics.Handler(),
		Redis:          d.Redis,
		IdempotencyTTL: d.IdempotencyTTL,
		StorageTimeout: d.StorageTimeout,
	})
}

func pinger(db *gorm.DB) httpadp.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
