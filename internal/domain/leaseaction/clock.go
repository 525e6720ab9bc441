package leaseaction

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// NextPerformedAt returns now, or the lease's latest performed_at when the
// clock is behind it, so a lease's log never goes backwards.
func NextPerformedAt(ctx context.Context, actions Repository, leaseID string, now time.Time) (time.Time, error) {
	latest, err := actions.LatestByLeaseID(ctx, leaseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return now, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if latest.PerformedAt.After(now) {
		return latest.PerformedAt.UTC(), nil
	}
	return now, nil
}
