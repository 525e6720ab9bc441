package leaseaction

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"leasehub-backend/internal/domain/lease"
)

func TestReplay_ReproducesLease(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	log := []LeaseAction{
		{ActionID: "a1", ActionType: TypeLeaseCreated, PerformedAt: t0},
		{ActionID: "a2", ActionType: TypeNote, PerformedAt: t0.Add(time.Hour)},
		{ActionID: "a3", ActionType: TypeRenewalOfferSent, PerformedAt: t0.Add(2 * time.Hour),
			OldRent: decimal.NewNullDecimal(decimal.NewFromInt(1400)),
			NewRent: decimal.NewNullDecimal(decimal.NewFromInt(1500))},
		{ActionID: "a4", ActionType: TypeRenewalDeclined, PerformedAt: t0.Add(3 * time.Hour)},
		{ActionID: "a5", ActionType: TypeNoticeReceived, PerformedAt: t0.Add(3 * time.Hour),
			Metadata: datatypes.NewJSONType(Metadata{NoticeType: "tenant_notice"})},
		{ActionID: "a6", ActionType: TypeMoveOut, PerformedAt: t0.Add(4 * time.Hour),
			Metadata: datatypes.NewJSONType(Metadata{MoveOutDate: "2026-07-01"})},
	}

	// Apply the same log to a live lease the way the processor would.
	live := activeLease()
	live.Status = ""
	live.RenewalStatus = ""
	for i := range log {
		if err := Mutate(live, &log[i]); err != nil {
			t.Fatalf("mutate %s: %v", log[i].ActionID, err)
		}
	}

	got, err := Replay(log)
	if err != nil {
		t.Fatal(err)
	}
	if d := Diff(got, Snapshot(live)); len(d) != 0 {
		t.Fatalf("replay diverged on %v", d)
	}
	if got.Status != lease.StatusExpired || got.RenewalStatus != lease.RenewalNotRenewing {
		t.Fatalf("unexpected final state %+v", got)
	}
	if !got.RenewalOfferRent.Decimal.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("offer rent=%s", got.RenewalOfferRent.Decimal)
	}
}

func TestReplay_Deterministic(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	log := []LeaseAction{
		{ActionID: "a1", ActionType: TypeTransferIn, PerformedAt: t0},
		{ActionID: "a2", ActionType: TypeRenewalAccepted, PerformedAt: t0},
	}
	a, err := Replay(log)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Replay(log)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("replay not deterministic: %+v vs %+v", a, b)
	}
}

func TestReplay_BadEntry(t *testing.T) {
	_, err := Replay([]LeaseAction{{ActionID: "x", ActionType: TypeRenewalOfferSent}})
	if !errors.Is(err, lease.ErrValidation) {
		t.Fatalf("err=%v", err)
	}
}

func TestDiff(t *testing.T) {
	ts := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	nt := lease.NoticeTenant
	base := State{
		Status:        lease.StatusActive,
		RenewalStatus: lease.RenewalNotRenewing,
		NoticeGivenAt: &ts,
		NoticeType:    &nt,
	}

	same := base
	local := ts.In(time.FixedZone("WIB", 7*3600))
	same.NoticeGivenAt = &local
	if d := Diff(base, same); len(d) != 0 {
		t.Fatalf("zone should not matter, got %v", d)
	}

	other := base
	other.Status = lease.StatusExpired
	other.NoticeType = nil
	other.RenewalOfferRent = decimal.NewNullDecimal(decimal.NewFromInt(1))
	want := []string{"status", "renewal_offer_rent", "notice_type"}
	if d := Diff(base, other); !reflect.DeepEqual(d, want) {
		t.Fatalf("diff=%v want %v", d, want)
	}
}
