package leaseaction

import "context"

// Repository is append-only: there is no update or delete.
type Repository interface {
	Append(ctx context.Context, a *LeaseAction) error

	// Ordered by (performed_at, id)
	ListByLeaseID(ctx context.Context, leaseID string) ([]LeaseAction, error)

	// Most recent entry for the lease, gorm.ErrRecordNotFound when the log is empty
	LatestByLeaseID(ctx context.Context, leaseID string) (*LeaseAction, error)
}
