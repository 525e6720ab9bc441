package leaseaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"leasehub-backend/internal/adapter/repository/gormrepo"
	"leasehub-backend/internal/domain/actor"
	domainAction "leasehub-backend/internal/domain/leaseaction"
	domainLease "leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/testutil/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type steppingClock struct{ t time.Time }

func (c *steppingClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func createLease(t *testing.T, db *gorm.DB, uc *Usecase) *domainLease.Lease {
	t.Helper()
	u := testdb.SeedUnit(t, db, "4A")
	end := time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)
	l, err := uc.Create(context.Background(), CreateInput{
		UnitID:      u.UnitID,
		TenantName:  "Budi Santoso",
		TenantEmail: "budi@example.com",
		LeaseStart:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		LeaseEnd:    &end,
		MonthlyRent: decimal.NewFromInt(1400),
	}, rina)
	require.NoError(t, err)
	return l
}

func TestIntegration_CreateWritesLeaseCreated(t *testing.T) {
	db := testdb.Open(t)
	uc := NewUsecase(testdb.UoW(db), func() time.Time { return fixedNow }, nil)

	l := createLease(t, db, uc)
	assert.Equal(t, domainLease.StatusActive, l.Status)
	assert.Equal(t, domainLease.RenewalPending, l.RenewalStatus)
	assert.Equal(t, domainLease.TermFixed, l.LeaseTerm)
	assert.Equal(t, rina.ID, l.CreatedBy)

	actions, err := gormrepo.NewLeaseActionRepository(db).ListByLeaseID(context.Background(), l.LeaseID)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, domainAction.TypeLeaseCreated, actions[0].ActionType)
}

func TestIntegration_CreateRejects(t *testing.T) {
	db := testdb.Open(t)
	uc := NewUsecase(testdb.UoW(db), func() time.Time { return fixedNow }, nil)
	ctx := context.Background()
	end := time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Create(ctx, CreateInput{UnitID: "ffffffffffffffffffffffffffffffff", TenantName: "A",
		LeaseStart: start, LeaseEnd: &end, MonthlyRent: decimal.NewFromInt(1)}, rina)
	assert.ErrorIs(t, err, domainLease.ErrNotFound)

	occupied := createLease(t, db, uc)
	_, err = uc.Create(ctx, CreateInput{UnitID: occupied.UnitID, TenantName: "B",
		LeaseStart: start, LeaseEnd: &end, MonthlyRent: decimal.NewFromInt(1)}, rina)
	assert.ErrorIs(t, err, domainLease.ErrUnitOccupied)

	free := testdb.SeedUnit(t, db, "5B")
	for name, in := range map[string]CreateInput{
		"end before start": {UnitID: free.UnitID, TenantName: "C", LeaseStart: end, LeaseEnd: &start, MonthlyRent: decimal.NewFromInt(1)},
		"fixed without end": {UnitID: free.UnitID, TenantName: "C", LeaseStart: start, MonthlyRent: decimal.NewFromInt(1)},
		"negative rent":     {UnitID: free.UnitID, TenantName: "C", LeaseStart: start, LeaseEnd: &end, MonthlyRent: decimal.NewFromInt(-1)},
		"missing tenant":    {UnitID: free.UnitID, LeaseStart: start, LeaseEnd: &end, MonthlyRent: decimal.NewFromInt(1)},
		"bad term":          {UnitID: free.UnitID, TenantName: "C", LeaseStart: start, LeaseEnd: &end, LeaseTerm: "weekly"},
	} {
		_, err := uc.Create(ctx, in, rina)
		assert.ErrorIs(t, err, domainLease.ErrValidation, name)
	}
	assert.Equal(t, int64(1), testdb.Count(t, db, &domainLease.Lease{}, "1 = 1"))
	assert.Equal(t, int64(1), testdb.Count(t, db, &domainAction.LeaseAction{}, "1 = 1"))
}

func TestIntegration_MonthToMonthWithoutEnd(t *testing.T) {
	db := testdb.Open(t)
	uc := NewUsecase(testdb.UoW(db), func() time.Time { return fixedNow }, nil)
	u := testdb.SeedUnit(t, db, "9")

	l, err := uc.Create(context.Background(), CreateInput{
		UnitID: u.UnitID, TenantName: "Sari", LeaseTerm: "month_to_month",
		LeaseStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), MonthlyRent: decimal.NewFromInt(900),
	}, rina)
	require.NoError(t, err)
	assert.Nil(t, l.LeaseEnd)
}

// A renewal offer keeps the current rent and stores the offered one.
func TestIntegration_RenewalOfferPersists(t *testing.T) {
	db := testdb.Open(t)
	uc := NewUsecase(testdb.UoW(db), func() time.Time { return fixedNow }, nil)
	l := createLease(t, db, uc)

	res, err := uc.Apply(context.Background(), ApplyInput{LeaseID: l.LeaseID, Type: "renewal_offer_sent", NewRent: rent(1500)}, rina)
	require.NoError(t, err)
	assert.True(t, res.Action.OldRent.Decimal.Equal(decimal.NewFromInt(1400)))
	assert.True(t, res.Action.NewRent.Decimal.Equal(decimal.NewFromInt(1500)))

	stored, err := gormrepo.NewLeaseRepository(db).GetByLeaseID(context.Background(), l.LeaseID)
	require.NoError(t, err)
	assert.Equal(t, domainLease.RenewalOfferSent, stored.RenewalStatus)
	assert.True(t, stored.RenewalOfferRent.Decimal.Equal(decimal.NewFromInt(1500)))
	assert.True(t, stored.MonthlyRent.Equal(decimal.NewFromInt(1400)))
	assert.Equal(t, uint64(2), stored.Version)
}

// The log alone reproduces the stored lease after an arbitrary sequence.
func TestIntegration_LogReplaysToStoredLease(t *testing.T) {
	db := testdb.Open(t)
	clock := &steppingClock{t: fixedNow}
	uc := NewUsecase(testdb.UoW(db), clock.Now, nil)
	ctx := context.Background()
	l := createLease(t, db, uc)

	steps := []ApplyInput{
		{Type: "note", Description: "inspection booked"},
		{Type: "renewal_offer_sent", NewRent: rent(1500)},
		{Type: "renewal_offer_sent", NewRent: rent(1450)},
		{Type: "renewal_declined"},
		{Type: "notice_received", NoticeType: "tenant_notice"},
		{Type: "move_out", MoveOutDate: "2027-02-28"},
		{Type: "renewal_accepted"}, // rejected: lease is expired now
		{Type: "lease_terminated"},
	}
	for _, in := range steps {
		in.LeaseID = l.LeaseID
		_, err := uc.Apply(ctx, in, rina)
		if in.Type == "renewal_accepted" {
			require.ErrorIs(t, err, domainLease.ErrInvalidTransition)
			continue
		}
		require.NoError(t, err, in.Type)
	}

	stored, err := gormrepo.NewLeaseRepository(db).GetByLeaseID(ctx, l.LeaseID)
	require.NoError(t, err)
	actions, err := gormrepo.NewLeaseActionRepository(db).ListByLeaseID(ctx, l.LeaseID)
	require.NoError(t, err)
	require.Len(t, actions, 8)

	replayed, err := domainAction.Replay(actions)
	require.NoError(t, err)
	assert.Empty(t, domainAction.Diff(replayed, domainAction.Snapshot(stored)))
	assert.Equal(t, domainLease.StatusTerminated, stored.Status)
	assert.True(t, stored.RenewalOfferRent.Decimal.Equal(decimal.NewFromInt(1450)))
}

// A failing lease update must take the already-appended action with it.
func TestIntegration_ApplyIsAtomic(t *testing.T) {
	db := testdb.Open(t)
	uc := NewUsecase(testdb.UoW(db), func() time.Time { return fixedNow }, nil)
	l := createLease(t, db, uc)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_lease_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "leases" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := uc.Apply(context.Background(), ApplyInput{LeaseID: l.LeaseID, Type: "move_out"}, rina)
	require.ErrorIs(t, err, domainLease.ErrStorage)

	assert.Equal(t, int64(1), testdb.Count(t, db, &domainAction.LeaseAction{}, "lease_id = ?", l.LeaseID))
	assert.Equal(t, int64(1), testdb.Count(t, db, &domainLease.Lease{}, "lease_id = ? AND status = ?", l.LeaseID, domainLease.StatusActive))
}

func TestIntegration_ApplyUnknownLease(t *testing.T) {
	db := testdb.Open(t)
	uc := NewUsecase(testdb.UoW(db), nil, nil)
	_, err := uc.Apply(context.Background(), ApplyInput{LeaseID: "ffffffffffffffffffffffffffffffff", Type: "note"},
		actor.Actor{ID: rina.ID})
	assert.ErrorIs(t, err, domainLease.ErrNotFound)
	assert.False(t, domainLease.Retryable(err))
}

// Concurrent callers on one lease are serialized: every committed call has
// exactly one action row and one version bump, and the log still replays
// to the stored lease.
func TestIntegration_ConcurrentApplySerializes(t *testing.T) {
	const callers = 16
	db := testdb.OpenShared(t, 8)
	uc := NewUsecase(testdb.UoW(db), func() time.Time { return fixedNow }, nil)
	l := createLease(t, db, uc)

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), ApplyInput{
				LeaseID: l.LeaseID,
				Type:    "renewal_offer_sent",
				NewRent: rent(int64(1500 + i)),
			}, rina)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, domainLease.Retryable(err), "only retryable failures are acceptable: %v", err)
	}
	require.Positive(t, ok)

	ctx := context.Background()
	stored, err := gormrepo.NewLeaseRepository(db).GetByLeaseID(ctx, l.LeaseID)
	require.NoError(t, err)
	actions, err := gormrepo.NewLeaseActionRepository(db).ListByLeaseID(ctx, l.LeaseID)
	require.NoError(t, err)

	assert.Len(t, actions, ok+1, "lease_created plus one row per committed call")
	assert.Equal(t, uint64(ok+1), stored.Version)

	replayed, err := domainAction.Replay(actions)
	require.NoError(t, err)
	assert.Empty(t, domainAction.Diff(replayed, domainAction.Snapshot(stored)))
}
