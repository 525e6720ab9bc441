package lease

import (
	domainAction "leasehub-backend/internal/domain/leaseaction"
)

// AuditReport compares a lease's stored mutable fields with what its own
// action log replays to.
type AuditReport struct {
	LeaseID    string             `json:"lease_id"`
	Actions    int                `json:"actions"`
	Consistent bool               `json:"consistent"`
	Mismatches []string           `json:"mismatches"`
	Stored     domainAction.State `json:"stored"`
	Replayed   domainAction.State `json:"replayed"`
}
