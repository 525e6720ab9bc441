package leaseaction

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

// Recorder receives one call per committed action.
type Recorder interface {
	ActionApplied(actionType string)
}

type nopRecorder struct{}

func (nopRecorder) ActionApplied(string) {}

// Usecase is the only writer of lease state: every mutation goes through
// Apply or Create and is paired with exactly one action row in the same
// transaction.
type Usecase struct {
	uow     uow.UnitOfWork
	now     func() time.Time
	loc     *time.Location
	metrics Recorder
}

// NewUsecase: now defaults to time.Now and rec to a no-op.
func NewUsecase(tx uow.UnitOfWork, now func() time.Time, rec Recorder) *Usecase {
	if now == nil {
		now = time.Now
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Usecase{uow: tx, now: now, loc: time.UTC, metrics: rec}
}

// WithCalendar sets the zone whose calendar supplies default dates such as
// move_out_date. A nil loc keeps UTC.
func (u *Usecase) WithCalendar(loc *time.Location) *Usecase {
	if loc != nil {
		u.loc = loc
	}
	return u
}

// Today is the calendar date of the clock in the configured zone, stored
// as UTC midnight like every other lease date.
func (u *Usecase) Today() time.Time {
	t := u.now().In(u.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Now is the injected clock in UTC, truncated to what every supported
// database stores.
func (u *Usecase) Now() time.Time {
	return u.now().UTC().Truncate(time.Millisecond)
}

func (u *Usecase) Apply(ctx context.Context, in ApplyInput, who actor.Actor) (*ApplyResult, error) {
	who, ok := who.Resolve()
	if !ok {
		return nil, domainLease.ValidationError("actor id is required")
	}
	typ, err := domainAction.ParseType(strings.TrimSpace(in.Type))
	if err != nil {
		return nil, err
	}
	if typ.System() {
		return nil, domainLease.InvalidTransition("%s is recorded by the system and cannot be submitted", typ)
	}
	now := u.Now()
	meta, err := resolvePayload(typ, in, u.Today())
	if err != nil {
		return nil, err
	}

	var out *ApplyResult
	err = u.uow.WithinLeaseTx(ctx, in.LeaseID, func(r uow.Repos, l *domainLease.Lease) error {
		if err := typ.CheckPrecondition(l); err != nil {
			return err
		}
		at, err := domainAction.NextPerformedAt(ctx, r.Actions, l.LeaseID, now)
		if err != nil {
			return err
		}

		a := newAction(l.LeaseID, typ, in.Description, who, at)
		a.Metadata = datatypes.NewJSONType(meta)
		if in.NewRent != nil {
			a.OldRent = decimal.NewNullDecimal(l.MonthlyRent)
			a.NewRent = decimal.NewNullDecimal(*in.NewRent)
		}

		if err := domainAction.Mutate(l, a); err != nil {
			return err
		}
		if err := l.CheckDates(); err != nil {
			return err
		}
		if err := r.Actions.Append(ctx, a); err != nil {
			return err
		}
		if typ != domainAction.TypeNote {
			if err := r.Leases.Update(ctx, l); err != nil {
				return err
			}
		}
		out = &ApplyResult{Action: a, Lease: l}
		return nil
	})
	if err != nil {
		err = domainLease.FromStore(err, "lease %s", in.LeaseID)
		u.logFailure(ctx, "apply lease action failed", err,
			zap.String("lease_id", in.LeaseID), zap.String("action_type", string(typ)))
		return nil, err
	}

	u.metrics.ActionApplied(string(typ))
	logger.InfoCtx(ctx, "lease action applied",
		zap.String("lease_id", out.Lease.LeaseID),
		zap.String("action_id", out.Action.ActionID),
		zap.String("action_type", string(typ)),
		zap.String("status", string(out.Lease.Status)),
		zap.String("renewal_status", string(out.Lease.RenewalStatus)),
		zap.String("actor_id", who.ID))
	return out, nil
}

// Create inserts a lease on a vacant unit together with its lease_created
// action.
func (u *Usecase) Create(ctx context.Context, in CreateInput, who actor.Actor) (*domainLease.Lease, error) {
	who, ok := who.Resolve()
	if !ok {
		return nil, domainLease.ValidationError("actor id is required")
	}
	l, err := buildLease(in, who)
	if err != nil {
		return nil, err
	}
	now := u.Now()

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Units.GetByUnitIDForUpdate(ctx, l.UnitID); err != nil {
			return domainLease.FromStore(err, "unit %s", l.UnitID)
		}
		if err := domainLease.EnsureVacant(ctx, r.Leases, l.UnitID); err != nil {
			return err
		}

		// fresh copy per attempt; the unit of work may rerun this closure
		fresh := *l
		fresh.LeaseID = id.NewID32()
		fresh.Version = 1
		a := newAction(fresh.LeaseID, domainAction.TypeLeaseCreated, in.Description, who, now)
		if err := domainAction.Mutate(&fresh, a); err != nil {
			return err
		}
		if err := r.Leases.Create(ctx, &fresh); err != nil {
			return err
		}
		if err := r.Actions.Append(ctx, a); err != nil {
			return err
		}
		l = &fresh
		return nil
	})
	if err != nil {
		err = domainLease.FromStore(err, "unit %s", in.UnitID)
		u.logFailure(ctx, "create lease failed", err, zap.String("unit_id", in.UnitID))
		return nil, err
	}

	u.metrics.ActionApplied(string(domainAction.TypeLeaseCreated))
	logger.InfoCtx(ctx, "lease created",
		zap.String("lease_id", l.LeaseID),
		zap.String("unit_id", l.UnitID),
		zap.String("actor_id", who.ID))
	return l, nil
}

func (u *Usecase) logFailure(ctx context.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, domainLease.ErrStorage) {
		logger.FromContext(ctx).Error(msg, fields...)
		return
	}
	logger.FromContext(ctx).Debug(msg, fields...)
}

// resolvePayload checks the optional payload against typ and returns the
// metadata with defaults filled in, so the stored row replays on its own.
func resolvePayload(typ domainAction.ActionType, in ApplyInput, today time.Time) (domainAction.Metadata, error) {
	var meta domainAction.Metadata

	if in.NewRent != nil && !typ.CarriesRent() {
		return meta, domainLease.ValidationError("new_rent is only accepted for %s", domainAction.TypeRenewalOfferSent)
	}
	if typ.CarriesRent() {
		if in.NewRent == nil {
			return meta, domainLease.ValidationError("new_rent is required for %s", typ)
		}
		if !in.NewRent.IsPositive() {
			return meta, domainLease.ValidationError("new_rent must be greater than 0")
		}
	}

	nt := strings.TrimSpace(in.NoticeType)
	switch {
	case typ == domainAction.TypeNoticeReceived:
		if nt == "" {
			nt = string(domainLease.NoticeTenant)
		}
		if !domainLease.NoticeType(nt).Valid() {
			return meta, domainLease.ValidationError("notice_type %q is not one of tenant_notice, non_renewal", nt)
		}
		meta.NoticeType = nt
	case typ == domainAction.TypeNonRenewalSent:
		if nt != "" && nt != string(domainLease.NoticeNonRenewal) {
			return meta, domainLease.ValidationError("non_renewal_sent always records notice_type non_renewal")
		}
		meta.NoticeType = string(domainLease.NoticeNonRenewal)
	case nt != "":
		return meta, domainLease.ValidationError("notice_type is only accepted for notice actions")
	}

	mod := strings.TrimSpace(in.MoveOutDate)
	switch {
	case typ == domainAction.TypeMoveOut:
		if mod == "" {
			mod = today.Format(domainAction.DateLayout)
		}
		if _, err := time.Parse(domainAction.DateLayout, mod); err != nil {
			return meta, domainLease.ValidationError("move_out_date %q must be YYYY-MM-DD", mod)
		}
		meta.MoveOutDate = mod
	case mod != "":
		return meta, domainLease.ValidationError("move_out_date is only accepted for %s", domainAction.TypeMoveOut)
	}
	return meta, nil
}

func newAction(leaseID string, typ domainAction.ActionType, desc string, who actor.Actor, at time.Time) *domainAction.LeaseAction {
	a := &domainAction.LeaseAction{
		ActionID:        id.NewID32(),
		LeaseID:         leaseID,
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

func buildLease(in CreateInput, who actor.Actor) (*domainLease.Lease, error) {
	unitID := strings.TrimSpace(in.UnitID)
	if unitID == "" {
		return nil, domainLease.ValidationError("unit_id is required")
	}
	name := strings.TrimSpace(in.TenantName)
	if name == "" {
		return nil, domainLease.ValidationError("tenant_name is required")
	}
	term := domainLease.Term(strings.TrimSpace(in.LeaseTerm))
	if term == "" {
		term = domainLease.TermFixed
	}
	if !term.Valid() {
		return nil, domainLease.ValidationError("lease_term %q is not one of fixed, month_to_month", in.LeaseTerm)
	}
	if in.MonthlyRent.IsNegative() {
		return nil, domainLease.ValidationError("monthly_rent must be >= 0")
	}

	l := &domainLease.Lease{
		UnitID:      unitID,
		TenantName:  name,
		TenantEmail: optional(in.TenantEmail),
		TenantPhone: optional(in.TenantPhone),
		LeaseStart:  domainLease.Date(in.LeaseStart),
		LeaseTerm:   term,
		MonthlyRent: in.MonthlyRent,
		CreatedBy:   who.ID,
	}
	if in.LeaseEnd != nil {
		end := domainLease.Date(*in.LeaseEnd)
		l.LeaseEnd = &end
	}
	if in.SecurityDeposit != nil {
		if in.SecurityDeposit.IsNegative() {
			return nil, domainLease.ValidationError("security_deposit must be >= 0")
		}
		l.SecurityDeposit = decimal.NewNullDecimal(*in.SecurityDeposit)
	}
	if in.MoveInDate != nil {
		d := domainLease.Date(*in.MoveInDate)
		l.MoveInDate = &d
	}
	if err := l.CheckDates(); err != nil {
		return nil, err
	}
	return l, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
