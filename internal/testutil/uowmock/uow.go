package uowmock

import (
	"context"
	"errors"

	"leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLeaseTxFn func(ctx context.Context, leaseID string, fn func(r uow.Repos, l *lease.Lease) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every callback directly against repos, loading the lease
// through repos.Leases.GetByLeaseIDForUpdate like the real unit of work.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinLeaseTxFn: func(ctx context.Context, leaseID string, fn func(uow.Repos, *lease.Lease) error) error {
			l, err := repos.Leases.GetByLeaseIDForUpdate(ctx, leaseID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinLeaseTx(fn func(context.Context, string, func(uow.Repos, *lease.Lease) error) error) *UoW {
	m.WithinLeaseTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLeaseTx(ctx context.Context, leaseID string, fn func(r uow.Repos, l *lease.Lease) error) error {
	if m.WithinLeaseTxFn != nil {
		return m.WithinLeaseTxFn(ctx, leaseID, fn)
	}
	return errUnimplemented
}
