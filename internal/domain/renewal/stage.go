package renewal

import (
	"time"

	"leasehub-backend/internal/domain/lease"
)

type Stage string

const (
	StageCritical  Stage = "critical"
	StageOfferDue  Stage = "offer_due"
	StageReviewDue Stage = "review_due"
	StageNoAction  Stage = "no_action"
)

const (
	CriticalDays = 30
	OfferDays    = 60
	ReviewDays   = 90
)

// Stages in urgency order.
var Stages = []Stage{StageCritical, StageOfferDue, StageReviewDue, StageNoAction}

func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Rank is 0 for the most urgent stage.
func (s Stage) Rank() int {
	switch s {
	case StageCritical:
		return 0
	case StageOfferDue:
		return 1
	case StageReviewDue:
		return 2
	}
	return 3
}

// Actionable reports whether the stage needs an operator to do something.
func (s Stage) Actionable() bool { return s != StageNoAction }

// DaysRemaining counts whole calendar days from today to end, both taken as
// UTC dates. It is negative once the lease has ended.
func DaysRemaining(today, end time.Time) int {
	return int(lease.Date(end).Sub(lease.Date(today)).Hours() / 24)
}

// Calculate classifies l as of today. Leases without an end date never
// become due.
func Calculate(today time.Time, l *lease.Lease) (int, Stage) {
	if l.LeaseEnd == nil {
		return 0, StageNoAction
	}
	days := DaysRemaining(today, *l.LeaseEnd)
	return days, StageFor(days, l.NoticeGivenAt != nil, l.RenewalStatus)
}

// StageFor is the threshold table; first match wins.
func StageFor(days int, noticeGiven bool, rs lease.RenewalStatus) Stage {
	switch {
	case noticeGiven, rs == lease.RenewalAccepted, rs == lease.RenewalDeclined:
		return StageNoAction
	case days < CriticalDays:
		return StageCritical
	case days < OfferDays:
		return StageOfferDue
	case days < ReviewDays:
		return StageReviewDue
	}
	return StageNoAction
}
