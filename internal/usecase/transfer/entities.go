package transfer

import (
	"time"

	domainAction "leasehub-backend/internal/domain/leaseaction"
	domainLease "leasehub-backend/internal/domain/lease"

	"github.com/shopspring/decimal"
)

type Input struct {
	OldLeaseID    string
	NewUnitID     string
	NewRent       decimal.Decimal
	NewLeaseStart time.Time
	NewLeaseEnd   time.Time
	Description   string
}

// Result carries both halves of the transfer as committed.
type Result struct {
	OldLease    *domainLease.Lease        `json:"old_lease"`
	NewLease    *domainLease.Lease        `json:"new_lease"`
	TransferOut *domainAction.LeaseAction `json:"transfer_out"`
	TransferIn  *domainAction.LeaseAction `json:"transfer_in"`
}
