package gormrepo

import (
	"context"

	leaseDomain "leasehub-backend/internal/domain/lease"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaseRepository struct{ db *gorm.DB }

func NewLeaseRepository(db *gorm.DB) *LeaseRepository { return &LeaseRepository{db: db} }

func (r *LeaseRepository) Create(ctx context.Context, l *leaseDomain.Lease) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeaseRepository) GetByLeaseID(ctx context.Context, leaseID string) (*leaseDomain.Lease, error) {
	var out leaseDomain.Lease
	res := r.db.WithContext(ctx).Where("lease_id = ?", leaseID).First(&out)
	return &out, res.Error
}

// GetByLeaseIDForUpdate issues SELECT ... FOR UPDATE. SQLite has no row
// locks and relies on its single writer instead.
func (r *LeaseRepository) GetByLeaseIDForUpdate(ctx context.Context, leaseID string) (*leaseDomain.Lease, error) {
	var out leaseDomain.Lease
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lease_id = ?", leaseID).
		First(&out)
	return &out, res.Error
}

func (r *LeaseRepository) GetActiveByUnitID(ctx context.Context, unitID string) (*leaseDomain.Lease, error) {
	var out leaseDomain.Lease
	res := r.db.WithContext(ctx).
		Where("unit_id = ? AND status = ?", unitID, leaseDomain.StatusActive).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LeaseRepository) ListActiveWithEnd(ctx context.Context) ([]leaseDomain.Lease, error) {
	var out []leaseDomain.Lease
	res := r.db.WithContext(ctx).
		Where("status = ? AND lease_end IS NOT NULL", leaseDomain.StatusActive).
		Order("lease_end ASC, lease_id ASC").
		Find(&out)
	return out, res.Error
}

// Update writes every column except created_at, guarded by the version the
// caller loaded.
func (r *LeaseRepository) Update(ctx context.Context, l *leaseDomain.Lease) error {
	expected := l.Version
	l.Version = expected + 1
	res := r.db.WithContext(ctx).
		Model(l).
		Where("version = ?", expected).
		Select("*").
		Omit("created_at").
		Updates(l)
	if res.Error != nil {
		l.Version = expected
		return res.Error
	}
	if res.RowsAffected == 0 {
		l.Version = expected
		return leaseDomain.ErrConcurrencyConflict
	}
	return nil
}
