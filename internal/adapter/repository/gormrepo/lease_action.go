package gormrepo

import (
	"context"

	actionDomain "leasehub-backend/internal/domain/leaseaction"

	"gorm.io/gorm"
)

type LeaseActionRepository struct{ db *gorm.DB }

func NewLeaseActionRepository(db *gorm.DB) *LeaseActionRepository {
	return &LeaseActionRepository{db: db}
}

func (r *LeaseActionRepository) Append(ctx context.Context, a *actionDomain.LeaseAction) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LeaseActionRepository) ListByLeaseID(ctx context.Context, leaseID string) ([]actionDomain.LeaseAction, error) {
	var out []actionDomain.LeaseAction
	res := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("performed_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LeaseActionRepository) LatestByLeaseID(ctx context.Context, leaseID string) (*actionDomain.LeaseAction, error) {
	var out actionDomain.LeaseAction
	res := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("performed_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}
