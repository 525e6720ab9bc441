package transfer

import (
	"context"
	"errors"
	"strings"
	"time"

	"leasehub-backend/internal/domain/actor"
	domainAction "leasehub-backend/internal/domain/leaseaction"
	domainLease "leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/uow"
	"leasehub-backend/internal/logger"
	"leasehub-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Recorder interface {
	TransferResult(result string)
}

type nopRecorder struct{}

func (nopRecorder) TransferResult(string) {}

type Usecase struct {
	uow     uow.UnitOfWork
	now     func() time.Time
	metrics Recorder
}

func NewUsecase(tx uow.UnitOfWork, now func() time.Time, rec Recorder) *Usecase {
	if now == nil {
		now = time.Now
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Usecase{uow: tx, now: now, metrics: rec}
}

// Transfer closes the old lease and opens a linked one on another unit. The
// new lease, the status change and both actions commit together or not at
// all.
func (u *Usecase) Transfer(ctx context.Context, in Input, who actor.Actor) (*Result, error) {
	res, err := u.transfer(ctx, in, who)
	if err != nil {
		kind := domainLease.Kind(err)
		if kind == "" {
			kind = "error"
		}
		u.metrics.TransferResult(kind)
		fields := []zap.Field{
			zap.String("old_lease_id", in.OldLeaseID),
			zap.String("new_unit_id", in.NewUnitID),
			zap.Error(err),
		}
		if errors.Is(err, domainLease.ErrStorage) {
			logger.FromContext(ctx).Error("lease transfer failed", fields...)
		} else {
			logger.FromContext(ctx).Debug("lease transfer rejected", fields...)
		}
		return nil, err
	}

	u.metrics.TransferResult("ok")
	logger.InfoCtx(ctx, "lease transferred",
		zap.String("old_lease_id", res.OldLease.LeaseID),
		zap.String("new_lease_id", res.NewLease.LeaseID),
		zap.String("new_unit_id", res.NewLease.UnitID),
		zap.String("actor_id", who.ID))
	return res, nil
}

func (u *Usecase) transfer(ctx context.Context, in Input, who actor.Actor) (*Result, error) {
	who, ok := who.Resolve()
	if !ok {
		return nil, domainLease.ValidationError("actor id is required")
	}
	newUnitID := strings.TrimSpace(in.NewUnitID)
	if newUnitID == "" {
		return nil, domainLease.ValidationError("new_unit_id is required")
	}
	if !in.NewRent.IsPositive() {
		return nil, domainLease.ValidationError("new_rent must be greater than 0")
	}
	if in.NewLeaseStart.IsZero() || in.NewLeaseEnd.IsZero() {
		return nil, domainLease.ValidationError("new_lease_start and new_lease_end are required")
	}
	start, end := domainLease.Date(in.NewLeaseStart), domainLease.Date(in.NewLeaseEnd)
	if !end.After(start) {
		return nil, domainLease.ValidationError("new_lease_end must be after new_lease_start")
	}
	now := u.now().UTC().Truncate(time.Millisecond)

	var out *Result
	err := u.uow.WithinLeaseTx(ctx, in.OldLeaseID, func(r uow.Repos, old *domainLease.Lease) error {
		if err := domainAction.TypeTransferOut.CheckPrecondition(old); err != nil {
			return err
		}
		if old.UnitID == newUnitID {
			return domainLease.ValidationError("new unit must differ from the lease's current unit")
		}
		if _, err := r.Units.GetByUnitIDForUpdate(ctx, newUnitID); err != nil {
			return domainLease.FromStore(err, "unit %s", newUnitID)
		}
		if err := domainLease.EnsureVacant(ctx, r.Leases, newUnitID); err != nil {
			return err
		}
		at, err := domainAction.NextPerformedAt(ctx, r.Actions, old.LeaseID, now)
		if err != nil {
			return err
		}

		fresh := &domainLease.Lease{
			LeaseID:     id.NewID32(),
			UnitID:      newUnitID,
			TenantName:  old.TenantName,
			TenantEmail: old.TenantEmail,
			TenantPhone: old.TenantPhone,
			LeaseStart:  start,
			LeaseEnd:    &end,
			LeaseTerm:   old.LeaseTerm,
			MonthlyRent: in.NewRent,
			MoveInDate:  &start,
			CreatedBy:   who.ID,
			Version:     1,
		}
		if err := fresh.CheckDates(); err != nil {
			return err
		}

		transferIn := newAction(fresh.LeaseID, domainAction.TypeTransferIn, old.LeaseID, in.Description, who, at)
		transferIn.OldRent = decimal.NewNullDecimal(old.MonthlyRent)
		transferIn.NewRent = decimal.NewNullDecimal(in.NewRent)
		transferIn.Metadata = datatypes.NewJSONType(domainAction.Metadata{
			LeaseStart: start.Format(domainAction.DateLayout),
			LeaseEnd:   end.Format(domainAction.DateLayout),
		})
		if err := domainAction.Mutate(fresh, transferIn); err != nil {
			return err
		}

		transferOut := newAction(old.LeaseID, domainAction.TypeTransferOut, fresh.LeaseID, in.Description, who, at)
		transferOut.OldRent = decimal.NewNullDecimal(old.MonthlyRent)
		transferOut.NewRent = decimal.NewNullDecimal(in.NewRent)
		if err := domainAction.Mutate(old, transferOut); err != nil {
			return err
		}

		if err := r.Leases.Create(ctx, fresh); err != nil {
			return err
		}
		if err := r.Leases.Update(ctx, old); err != nil {
			return err
		}
		if err := r.Actions.Append(ctx, transferOut); err != nil {
			return err
		}
		if err := r.Actions.Append(ctx, transferIn); err != nil {
			return err
		}

		out = &Result{OldLease: old, NewLease: fresh, TransferOut: transferOut, TransferIn: transferIn}
		return nil
	})
	if err != nil {
		return nil, domainLease.FromStore(err, "lease %s", in.OldLeaseID)
	}
	return out, nil
}

func newAction(leaseID string, typ domainAction.ActionType, related, desc string, who actor.Actor, at time.Time) *domainAction.LeaseAction {
	a := &domainAction.LeaseAction{
		ActionID:        id.NewID32(),
		LeaseID:         leaseID,
		RelatedLeaseID:  &related,
		ActionType:      typ,
		PerformedAt:     at,
		PerformedBy:     who.ID,
		PerformedByName: who.DisplayName,
	}
	if d := strings.TrimSpace(desc); d != "" {
		a.Description = &d
	}
	return a
}
