package gormrepo

import (
	"leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/leaseaction"
	"leasehub-backend/internal/domain/unit"
)

// Models lists every table the repositories read or write, in creation order.
func Models() []any {
	return []any{&unit.Unit{}, &lease.Lease{}, &leaseaction.LeaseAction{}}
}
