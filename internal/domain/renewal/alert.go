package renewal

import (
	"sort"
	"time"

	"leasehub-backend/internal/domain/lease"
)

// Alert is the derived worklist row for one lease; it is never stored.
type Alert struct {
	Lease         *lease.Lease        `json:"lease"`
	DaysRemaining int                 `json:"days_remaining"`
	Stage         Stage               `json:"stage"`
	RenewalStatus lease.RenewalStatus `json:"renewal_status"`
}

func NewAlert(today time.Time, l *lease.Lease) Alert {
	days, st := Calculate(today, l)
	return Alert{Lease: l, DaysRemaining: days, Stage: st, RenewalStatus: l.RenewalStatus}
}

// Less orders by stage rank, then days remaining, then lease id.
func Less(a, b Alert) bool {
	if ra, rb := a.Stage.Rank(), b.Stage.Rank(); ra != rb {
		return ra < rb
	}
	if a.DaysRemaining != b.DaysRemaining {
		return a.DaysRemaining < b.DaysRemaining
	}
	return a.Lease.LeaseID < b.Lease.LeaseID
}

func Sort(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool { return Less(alerts[i], alerts[j]) })
}

type Summary struct {
	Critical     int `json:"critical"`
	ActionNeeded int `json:"action_needed"`
	Total        int `json:"total"`
}

// Summarize counts alerts; ActionNeeded is offer_due plus review_due.
func Summarize(alerts []Alert) Summary {
	s := Summary{Total: len(alerts)}
	for _, a := range alerts {
		switch a.Stage {
		case StageCritical:
			s.Critical++
		case StageOfferDue, StageReviewDue:
			s.ActionNeeded++
		}
	}
	return s
}

// CountByStage always returns an entry for every stage.
func CountByStage(alerts []Alert) map[Stage]int {
	out := make(map[Stage]int, len(Stages))
	for _, st := range Stages {
		out[st] = 0
	}
	for _, a := range alerts {
		out[a.Stage]++
	}
	return out
}
