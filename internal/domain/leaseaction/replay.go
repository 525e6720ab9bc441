package leaseaction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"leasehub-backend/internal/domain/lease"
)

// State is the part of a lease that actions mutate.
type State struct {
	Status             lease.Status        `json:"status"`
	RenewalStatus      lease.RenewalStatus `json:"renewal_status"`
	RenewalOfferRent   decimal.NullDecimal `json:"renewal_offer_rent"`
	RenewalOfferSentAt *time.Time          `json:"renewal_offer_sent_at,omitempty"`
	RenewalResponseAt  *time.Time          `json:"renewal_response_at,omitempty"`
	NoticeGivenAt      *time.Time          `json:"notice_given_at,omitempty"`
	NoticeType         *lease.NoticeType   `json:"notice_type,omitempty"`
	MoveOutDate        *time.Time          `json:"move_out_date,omitempty"`
}

func Snapshot(l *lease.Lease) State {
	return State{
		Status:             l.Status,
		RenewalStatus:      l.RenewalStatus,
		RenewalOfferRent:   l.RenewalOfferRent,
		RenewalOfferSentAt: l.RenewalOfferSentAt,
		RenewalResponseAt:  l.RenewalResponseAt,
		NoticeGivenAt:      l.NoticeGivenAt,
		NoticeType:         l.NoticeType,
		MoveOutDate:        l.MoveOutDate,
	}
}

// Replay folds actions, which must already be in (performed_at, id) order,
// through Mutate starting from an empty lease.
func Replay(actions []LeaseAction) (State, error) {
	var l lease.Lease
	for i := range actions {
		if err := Mutate(&l, &actions[i]); err != nil {
			return State{}, fmt.Errorf("replay action %s: %w", actions[i].ActionID, err)
		}
	}
	return Snapshot(&l), nil
}

// Diff lists the fields on which got and want disagree.
func Diff(got, want State) []string {
	var out []string
	if got.Status != want.Status {
		out = append(out, "status")
	}
	if got.RenewalStatus != want.RenewalStatus {
		out = append(out, "renewal_status")
	}
	if got.RenewalOfferRent.Valid != want.RenewalOfferRent.Valid ||
		(got.RenewalOfferRent.Valid && !got.RenewalOfferRent.Decimal.Equal(want.RenewalOfferRent.Decimal)) {
		out = append(out, "renewal_offer_rent")
	}
	if !sameInstant(got.RenewalOfferSentAt, want.RenewalOfferSentAt) {
		out = append(out, "renewal_offer_sent_at")
	}
	if !sameInstant(got.RenewalResponseAt, want.RenewalResponseAt) {
		out = append(out, "renewal_response_at")
	}
	if !sameInstant(got.NoticeGivenAt, want.NoticeGivenAt) {
		out = append(out, "notice_given_at")
	}
	if (got.NoticeType == nil) != (want.NoticeType == nil) ||
		(got.NoticeType != nil && *got.NoticeType != *want.NoticeType) {
		out = append(out, "notice_type")
	}
	if !sameDay(got.MoveOutDate, want.MoveOutDate) {
		out = append(out, "move_out_date")
	}
	return out
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Truncate(time.Millisecond).Equal(b.Truncate(time.Millisecond))
}

// date columns come back at midnight in whatever zone the driver picked
func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
