package renewal

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	domainLease "leasehub-backend/internal/domain/lease"
	domainRenewal "leasehub-backend/internal/domain/renewal"
	"leasehub-backend/internal/testutil/leasemock"
)

var today = time.Date(2026, 10, 16, 22, 15, 0, 0, time.UTC)

type gaugeSpy struct {
	stages  map[string]int
	summary [3]int
}

func (g *gaugeSpy) SetRenewalStage(stage string, n int) {
	if g.stages == nil {
		g.stages = map[string]int{}
	}
	g.stages[stage] = n
}

func (g *gaugeSpy) SetRenewalSummary(c, a, t int) { g.summary = [3]int{c, a, t} }

func ending(id string, days int, rs domainLease.RenewalStatus) domainLease.Lease {
	end := domainLease.Date(today).AddDate(0, 0, days)
	return domainLease.Lease{LeaseID: id, Status: domainLease.StatusActive, RenewalStatus: rs, LeaseEnd: &end}
}

func repoOf(leases ...domainLease.Lease) *leasemock.Repo {
	return &leasemock.Repo{
		ListActiveWithEndFn: func(context.Context) ([]domainLease.Lease, error) {
			// hand out a fresh copy so repeated calls see identical input
			out := make([]domainLease.Lease, len(leases))
			copy(out, leases)
			return out, nil
		},
	}
}

func ids(alerts []domainRenewal.Alert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Lease.LeaseID)
	}
	return out
}

func TestFeed_OrderAndSummary(t *testing.T) {
	repo := repoOf(
		ending("l-far", 200, domainLease.RenewalPending),
		ending("l-review", 75, domainLease.RenewalPending),
		ending("l-crit-b", 20, domainLease.RenewalPending),
		ending("l-offer", 45, domainLease.RenewalOfferSent),
		ending("l-crit-a", 20, domainLease.RenewalPending),
		ending("l-accepted", 5, domainLease.RenewalAccepted),
		ending("l-crit-soon", 3, domainLease.RenewalOfferSent),
	)
	g := &gaugeSpy{}
	uc := NewUsecase(repo, func() time.Time { return today }, g)

	feed, err := uc.Feed(context.Background(), FeedFilter{})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	want := []string{"l-crit-soon", "l-crit-a", "l-crit-b", "l-offer", "l-review", "l-accepted", "l-far"}
	if got := ids(feed.Alerts); !reflect.DeepEqual(got, want) {
		t.Fatalf("order=%v want %v", got, want)
	}
	if feed.Alerts[1].Stage != domainRenewal.StageCritical || feed.Alerts[1].DaysRemaining != 20 {
		t.Fatalf("critical alert=%+v", feed.Alerts[1])
	}
	if feed.Alerts[5].RenewalStatus != domainLease.RenewalAccepted || feed.Alerts[5].Stage != domainRenewal.StageNoAction {
		t.Fatalf("accepted alert=%+v", feed.Alerts[5])
	}
	if feed.Summary != (domainRenewal.Summary{Critical: 3, ActionNeeded: 2, Total: 7}) {
		t.Fatalf("summary=%+v", feed.Summary)
	}
	if !feed.AsOf.Equal(domainLease.Date(today)) {
		t.Fatalf("as_of=%v", feed.AsOf)
	}
	if g.stages["critical"] != 3 || g.stages["no_action"] != 2 || g.summary != [3]int{3, 2, 7} {
		t.Fatalf("gauges=%+v", g)
	}

	again, _ := uc.Feed(context.Background(), FeedFilter{})
	if !reflect.DeepEqual(ids(again.Alerts), ids(feed.Alerts)) {
		t.Fatal("feed is not deterministic")
	}
}

func TestFeed_StageFilterKeepsFullSummary(t *testing.T) {
	repo := repoOf(
		ending("a", 10, domainLease.RenewalPending),
		ending("b", 40, domainLease.RenewalPending),
		ending("c", 50, domainLease.RenewalPending),
	)
	uc := NewUsecase(repo, func() time.Time { return today }, nil)

	feed, err := uc.Feed(context.Background(), FeedFilter{Stage: "offer_due"})
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(feed.Alerts); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("filtered=%v", got)
	}
	if feed.Summary.Total != 3 || feed.Summary.Critical != 1 {
		t.Fatalf("summary must cover the unfiltered set: %+v", feed.Summary)
	}
}

func TestFeed_Errors(t *testing.T) {
	uc := NewUsecase(repoOf(), nil, nil)
	if _, err := uc.Feed(context.Background(), FeedFilter{Stage: "urgent"}); !errors.Is(err, domainLease.ErrValidation) {
		t.Fatalf("bad stage err=%v", err)
	}

	failing := &leasemock.Repo{ListActiveWithEndFn: func(context.Context) ([]domainLease.Lease, error) {
		return nil, context.DeadlineExceeded
	}}
	_, err := NewUsecase(failing, nil, nil).Feed(context.Background(), FeedFilter{})
	if !errors.Is(err, domainLease.ErrStorage) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("storage err=%v", err)
	}
}

func TestFeed_Empty(t *testing.T) {
	g := &gaugeSpy{}
	feed, err := NewUsecase(repoOf(), func() time.Time { return today }, g).Feed(context.Background(), FeedFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(feed.Alerts) != 0 || feed.Summary.Total != 0 {
		t.Fatalf("feed=%+v", feed)
	}
	if len(g.stages) != 4 {
		t.Fatalf("every stage gauge is reset, got %v", g.stages)
	}
}
