package gormrepo

import (
	"context"

	unitDomain "leasehub-backend/internal/domain/unit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnitRepository struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) *UnitRepository { return &UnitRepository{db: db} }

func (r *UnitRepository) Create(ctx context.Context, u *unitDomain.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UnitRepository) GetByUnitID(ctx context.Context, unitID string) (*unitDomain.Unit, error) {
	var out unitDomain.Unit
	res := r.db.WithContext(ctx).Where("unit_id = ?", unitID).First(&out)
	return &out, res.Error
}

func (r *UnitRepository) GetByUnitIDForUpdate(ctx context.Context, unitID string) (*unitDomain.Unit, error) {
	var out unitDomain.Unit
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("unit_id = ?", unitID).
		First(&out)
	return &out, res.Error
}

func (r *UnitRepository) GetByPropertyAndNumber(ctx context.Context, propertyID, unitNumber string) (*unitDomain.Unit, error) {
	var out unitDomain.Unit
	res := r.db.WithContext(ctx).
		Where("property_id = ? AND unit_number = ?", propertyID, unitNumber).
		First(&out)
	return &out, res.Error
}
