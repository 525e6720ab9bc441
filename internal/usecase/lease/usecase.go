package lease

import (
	"context"

	domainAction "leasehub-backend/internal/domain/leaseaction"
	domainLease "leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/uow"
	"leasehub-backend/internal/logger"

	"go.uber.org/zap"
)

// Usecase serves lease detail views: the record, its history and an audit
// of the two against each other.
type Usecase struct {
	leases  domainLease.Repository
	actions domainAction.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(leases domainLease.Repository, actions domainAction.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{leases: leases, actions: actions, uow: tx}
}

func (u *Usecase) Get(ctx context.Context, leaseID string) (*domainLease.Lease, error) {
	l, err := u.leases.GetByLeaseID(ctx, leaseID)
	if err != nil {
		return nil, domainLease.FromStore(err, "lease %s", leaseID)
	}
	return l, nil
}

// History returns the lease's actions in (performed_at, id) order.
func (u *Usecase) History(ctx context.Context, leaseID string) ([]domainAction.LeaseAction, error) {
	if _, err := u.Get(ctx, leaseID); err != nil {
		return nil, err
	}
	actions, err := u.actions.ListByLeaseID(ctx, leaseID)
	if err != nil {
		return nil, domainLease.FromStore(err, "actions of lease %s", leaseID)
	}
	if actions == nil {
		actions = []domainAction.LeaseAction{}
	}
	return actions, nil
}

// Audit reads the lease and its log inside one transaction so a concurrent
// writer cannot slip in between the two reads.
func (u *Usecase) Audit(ctx context.Context, leaseID string) (*AuditReport, error) {
	var rep *AuditReport
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Leases.GetByLeaseID(ctx, leaseID)
		if err != nil {
			return err
		}
		actions, err := r.Actions.ListByLeaseID(ctx, leaseID)
		if err != nil {
			return err
		}
		replayed, err := domainAction.Replay(actions)
		if err != nil {
			return err
		}
		stored := domainAction.Snapshot(l)
		diff := domainAction.Diff(replayed, stored)
		if diff == nil {
			diff = []string{}
		}
		rep = &AuditReport{
			LeaseID:    leaseID,
			Actions:    len(actions),
			Consistent: len(diff) == 0,
			Mismatches: diff,
			Stored:     stored,
			Replayed:   replayed,
		}
		return nil
	})
	if err != nil {
		return nil, domainLease.FromStore(err, "lease %s", leaseID)
	}
	if !rep.Consistent {
		logger.WarnCtx(ctx, "lease diverges from its action log",
			zap.String("lease_id", leaseID), zap.Strings("fields", rep.Mismatches))
	}
	return rep, nil
}
