package leaseaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"leasehub-backend/internal/domain/leaseaction"
	"leasehub-backend/internal/testutil/actionmock"

	"gorm.io/gorm"
)

func TestNextPerformedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	ahead := now.Add(2 * time.Second)

	latest := func(at time.Time, err error) *actionmock.Repo {
		return &actionmock.Repo{LatestByLeaseIDFn: func(context.Context, string) (*leaseaction.LeaseAction, error) {
			if err != nil {
				return nil, err
			}
			return &leaseaction.LeaseAction{PerformedAt: at}, nil
		}}
	}

	if got, err := leaseaction.NextPerformedAt(ctx, latest(time.Time{}, gorm.ErrRecordNotFound), "L", now); err != nil || !got.Equal(now) {
		t.Fatalf("empty log: %v %v", got, err)
	}
	if got, _ := leaseaction.NextPerformedAt(ctx, latest(now.Add(-time.Hour), nil), "L", now); !got.Equal(now) {
		t.Fatalf("older log: %v", got)
	}
	if got, _ := leaseaction.NextPerformedAt(ctx, latest(ahead, nil), "L", now); !got.Equal(ahead) {
		t.Fatalf("clock behind log: %v want %v", got, ahead)
	}

	sentinel := errors.New("db down")
	if _, err := leaseaction.NextPerformedAt(ctx, latest(time.Time{}, sentinel), "L", now); !errors.Is(err, sentinel) {
		t.Fatalf("err=%v", err)
	}
}
