package uow

import (
	"context"

	"leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/leaseaction"
	"leasehub-backend/internal/domain/unit"
)

// Repos are bound to the running transaction.
type Repos struct {
	Leases  lease.Repository
	Actions leaseaction.Repository
	Units   unit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the lease row first, then pass it in
	WithinLeaseTx(ctx context.Context, leaseID string, fn func(r Repos, l *lease.Lease) error) error
}
