package leasemock

import (
	"context"

	domain "leasehub-backend/internal/domain/lease"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Lease) error
	GetByLeaseIDFn          func(ctx context.Context, leaseID string) (*domain.Lease, error)
	GetByLeaseIDForUpdateFn func(ctx context.Context, leaseID string) (*domain.Lease, error)
	GetActiveByUnitIDFn     func(ctx context.Context, unitID string) (*domain.Lease, error)
	ListActiveWithEndFn     func(ctx context.Context) ([]domain.Lease, error)
	UpdateFn                func(ctx context.Context, l *domain.Lease) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Lease) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLeaseID(ctx context.Context, leaseID string) (*domain.Lease, error) {
	if m.GetByLeaseIDFn != nil {
		return m.GetByLeaseIDFn(ctx, leaseID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLeaseIDForUpdate(ctx context.Context, leaseID string) (*domain.Lease, error) {
	if m.GetByLeaseIDForUpdateFn != nil {
		return m.GetByLeaseIDForUpdateFn(ctx, leaseID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByUnitID(ctx context.Context, unitID string) (*domain.Lease, error) {
	if m.GetActiveByUnitIDFn != nil {
		return m.GetActiveByUnitIDFn(ctx, unitID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListActiveWithEnd(ctx context.Context) ([]domain.Lease, error) {
	if m.ListActiveWithEndFn != nil {
		return m.ListActiveWithEndFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Update(ctx context.Context, l *domain.Lease) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, l)
	}
	return nil
}
