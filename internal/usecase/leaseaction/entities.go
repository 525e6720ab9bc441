package leaseaction

import (
	"time"

	domainAction "leasehub-backend/internal/domain/leaseaction"
	domainLease "leasehub-backend/internal/domain/lease"

	"github.com/shopspring/decimal"
)

// ApplyInput is one operator command against an existing lease. Optional
// payload fields are only accepted by the action types that use them.
type ApplyInput struct {
	LeaseID     string
	Type        string
	Description string
	NewRent     *decimal.Decimal // renewal_offer_sent
	NoticeType  string           // notice_received
	MoveOutDate string           // move_out, YYYY-MM-DD
}

type ApplyResult struct {
	Action *domainAction.LeaseAction `json:"action"`
	Lease  *domainLease.Lease        `json:"lease"`
}

type CreateInput struct {
	UnitID          string
	TenantName      string
	TenantEmail     string
	TenantPhone     string
	LeaseStart      time.Time
	LeaseEnd        *time.Time
	LeaseTerm       string
	MonthlyRent     decimal.Decimal
	SecurityDeposit *decimal.Decimal
	MoveInDate      *time.Time
	Description     string
}
