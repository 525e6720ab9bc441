package leaseaction

import (
	"fmt"
	"time"

	"leasehub-backend/internal/domain/lease"
)

var canonical = map[ActionType]struct{}{
	TypeLeaseCreated:     {},
	TypeRenewalOfferSent: {},
	TypeRenewalAccepted:  {},
	TypeRenewalDeclined:  {},
	TypeNoticeReceived:   {},
	TypeNonRenewalSent:   {},
	TypeMoveOut:          {},
	TypeLeaseTerminated:  {},
	TypeNote:             {},
	TypeTransferOut:      {},
	TypeTransferIn:       {},
}

// ParseType rejects anything outside the canonical set; free-text entries
// go through TypeNote instead.
func ParseType(s string) (ActionType, error) {
	t := ActionType(s)
	if _, ok := canonical[t]; !ok {
		return "", lease.ValidationError("unknown action type %q", s)
	}
	return t, nil
}

// System reports whether t is written by lease creation or a transfer and
// therefore cannot be submitted directly.
func (t ActionType) System() bool {
	switch t {
	case TypeLeaseCreated, TypeTransferIn, TypeTransferOut:
		return true
	}
	return false
}

// CarriesRent reports whether new_rent is meaningful for t.
func (t ActionType) CarriesRent() bool { return t == TypeRenewalOfferSent }

// CheckPrecondition validates t against the lease's current status.
func (t ActionType) CheckPrecondition(l *lease.Lease) error {
	switch t {
	case TypeRenewalOfferSent, TypeRenewalAccepted, TypeRenewalDeclined,
		TypeNoticeReceived, TypeNonRenewalSent:
		if l.Status != lease.StatusActive {
			return lease.InvalidTransition("%s requires an active lease, lease is %s", t, l.Status)
		}
	case TypeTransferOut:
		if l.Status.Terminal() {
			return lease.InvalidTransition("lease is already %s", l.Status)
		}
	case TypeMoveOut, TypeLeaseTerminated, TypeNote, TypeLeaseCreated, TypeTransferIn:
	default:
		return lease.ValidationError("unknown action type %q", t)
	}
	return nil
}

// Mutate applies the canonical mutation of a to l. Everything it needs comes
// from the action record itself (PerformedAt as "now", NewRent, Metadata), so
// the processor and Replay share this single code path.
func Mutate(l *lease.Lease, a *LeaseAction) error {
	now := a.PerformedAt
	meta := a.Meta()

	switch a.ActionType {
	case TypeLeaseCreated, TypeTransferIn:
		if l.Status == "" || a.ActionType == TypeTransferIn {
			l.Status = lease.StatusActive
		}
		l.RenewalStatus = lease.RenewalPending
	case TypeRenewalOfferSent:
		if !a.NewRent.Valid {
			return lease.ValidationError("renewal_offer_sent requires new_rent")
		}
		l.RenewalOfferRent = a.NewRent
		l.RenewalOfferSentAt = timePtr(now)
		l.RenewalStatus = lease.RenewalOfferSent
	case TypeRenewalAccepted:
		l.RenewalResponseAt = timePtr(now)
		l.RenewalStatus = lease.RenewalAccepted
	case TypeRenewalDeclined:
		l.RenewalResponseAt = timePtr(now)
		l.RenewalStatus = lease.RenewalDeclined
	case TypeNoticeReceived, TypeNonRenewalSent:
		nt := lease.NoticeType(meta.NoticeType)
		if a.ActionType == TypeNonRenewalSent {
			nt = lease.NoticeNonRenewal
		} else if nt == "" {
			nt = lease.NoticeTenant
		}
		l.NoticeGivenAt = timePtr(now)
		l.NoticeType = &nt
		l.RenewalStatus = lease.RenewalNotRenewing
	case TypeMoveOut:
		d := lease.Date(now)
		if meta.MoveOutDate != "" {
			parsed, err := time.Parse(DateLayout, meta.MoveOutDate)
			if err != nil {
				return lease.ValidationError("move_out_date %q: %v", meta.MoveOutDate, err)
			}
			d = parsed
		}
		l.Status = lease.StatusExpired
		l.MoveOutDate = &d
	case TypeLeaseTerminated:
		l.Status = lease.StatusTerminated
	case TypeTransferOut:
		l.Status = lease.StatusTransferred
	case TypeNote:
	default:
		return fmt.Errorf("%w: no mutation defined for %q", lease.ErrValidation, a.ActionType)
	}
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }
