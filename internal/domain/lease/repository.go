package lease

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lease) error
	GetByLeaseID(ctx context.Context, leaseID string) (*Lease, error)
	// Lock the row for the rest of the transaction
	GetByLeaseIDForUpdate(ctx context.Context, leaseID string) (*Lease, error)
	GetActiveByUnitID(ctx context.Context, unitID string) (*Lease, error)
	ListActiveWithEnd(ctx context.Context) ([]Lease, error)
	// Update persists l when its stored version still matches; it bumps
	// l.Version and returns ErrConcurrencyConflict otherwise.
	Update(ctx context.Context, l *Lease) error
}
