package renewal

import (
	"context"
	"strings"
	"time"

	domainLease "leasehub-backend/internal/domain/lease"
	domainRenewal "leasehub-backend/internal/domain/renewal"
	"leasehub-backend/internal/logger"

	"go.uber.org/zap"
)

// Gauges receives the stage counts of every feed read.
type Gauges interface {
	SetRenewalStage(stage string, n int)
	SetRenewalSummary(critical, actionNeeded, total int)
}

type nopGauges struct{}

func (nopGauges) SetRenewalStage(string, int)     {}
func (nopGauges) SetRenewalSummary(int, int, int) {}

// Usecase builds the renewal worklist. It only reads, takes no locks and
// caches nothing.
type Usecase struct {
	leases domainLease.Repository
	now    func() time.Time
	gauges Gauges
}

func NewUsecase(leases domainLease.Repository, now func() time.Time, g Gauges) *Usecase {
	if now == nil {
		now = time.Now
	}
	if g == nil {
		g = nopGauges{}
	}
	return &Usecase{leases: leases, now: now, gauges: g}
}

func (u *Usecase) Feed(ctx context.Context, f FeedFilter) (*Feed, error) {
	var want domainRenewal.Stage
	if s := strings.TrimSpace(f.Stage); s != "" {
		st, ok := domainRenewal.ParseStage(s)
		if !ok {
			return nil, domainLease.ValidationError("stage %q is not one of critical, offer_due, review_due, no_action", s)
		}
		want = st
	}

	leases, err := u.leases.ListActiveWithEnd(ctx)
	if err != nil {
		err = domainLease.FromStore(err, "active leases")
		logger.ErrorCtx(ctx, err)
		return nil, err
	}

	today := domainLease.Date(u.now())
	all := make([]domainRenewal.Alert, 0, len(leases))
	for i := range leases {
		all = append(all, domainRenewal.NewAlert(today, &leases[i]))
	}
	domainRenewal.Sort(all)

	summary := domainRenewal.Summarize(all)
	byStage := domainRenewal.CountByStage(all)
	for st, n := range byStage {
		u.gauges.SetRenewalStage(string(st), n)
	}
	u.gauges.SetRenewalSummary(summary.Critical, summary.ActionNeeded, summary.Total)

	alerts := all
	if want != "" {
		alerts = make([]domainRenewal.Alert, 0, byStage[want])
		for _, a := range all {
			if a.Stage == want {
				alerts = append(alerts, a)
			}
		}
	}

	logger.DebugCtx(ctx, "renewal feed built",
		zap.Int("total", summary.Total),
		zap.Int("critical", summary.Critical),
		zap.Int("returned", len(alerts)))
	return &Feed{AsOf: today, Alerts: alerts, Summary: summary, ByStage: byStage}, nil
}
