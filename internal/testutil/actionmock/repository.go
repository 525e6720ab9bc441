package actionmock

import (
	"context"

	domain "leasehub-backend/internal/domain/leaseaction"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn          func(ctx context.Context, a *domain.LeaseAction) error
	ListByLeaseIDFn   func(ctx context.Context, leaseID string) ([]domain.LeaseAction, error)
	LatestByLeaseIDFn func(ctx context.Context, leaseID string) (*domain.LeaseAction, error)
}

func (m *Repo) Append(ctx context.Context, a *domain.LeaseAction) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByLeaseID(ctx context.Context, leaseID string) ([]domain.LeaseAction, error) {
	if m.ListByLeaseIDFn != nil {
		return m.ListByLeaseIDFn(ctx, leaseID)
	}
	return nil, context.Canceled
}

func (m *Repo) LatestByLeaseID(ctx context.Context, leaseID string) (*domain.LeaseAction, error) {
	if m.LatestByLeaseIDFn != nil {
		return m.LatestByLeaseIDFn(ctx, leaseID)
	}
	return nil, context.Canceled
}
