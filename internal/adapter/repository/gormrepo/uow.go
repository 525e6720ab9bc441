package gormrepo

import (
	"context"
	"errors"
	"time"

	"leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/uow"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

const (
	defaultMaxRetries = 4
	defaultMaxElapsed = 2 * time.Second
)

type GormUoW struct {
	db      *gorm.DB
	backOff func() backoff.BackOff
}

func NewGormUoW(db *gorm.DB) *GormUoW {
	return &GormUoW{db: db, backOff: defaultBackOff}
}

// WithBackOff replaces the retry policy used for ErrConcurrencyConflict.
func (u *GormUoW) WithBackOff(fn func() backoff.BackOff) *GormUoW {
	u.backOff = fn
	return u
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = defaultMaxElapsed
	return backoff.WithMaxRetries(b, defaultMaxRetries)
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Leases:  &LeaseRepository{db: tx},
		Actions: &LeaseActionRepository{db: tx},
		Units:   &UnitRepository{db: tx},
	}
}

// retry reruns a whole transaction while it loses the optimistic version
// race; any other error ends it.
func (u *GormUoW) retry(ctx context.Context, run func() error) error {
	op := func() error {
		err := run()
		if err == nil || errors.Is(err, lease.ErrConcurrencyConflict) {
			return err
		}
		return backoff.Permanent(err)
	}
	return backoff.Retry(op, backoff.WithContext(u.backOff(), ctx))
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.retry(ctx, func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(u.repos(tx))
		})
	})
}

func (u *GormUoW) WithinLeaseTx(ctx context.Context, leaseID string, fn func(r uow.Repos, l *lease.Lease) error) error {
	return u.retry(ctx, func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			r := u.repos(tx)
			// lock the lease row up-front to serialize writers
			l, err := r.Leases.GetByLeaseIDForUpdate(ctx, leaseID)
			if err != nil {
				return err
			}
			return fn(r, l)
		})
	})
}

