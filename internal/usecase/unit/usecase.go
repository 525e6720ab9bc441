package unit

import (
	"context"
	"errors"
	"strings"

	domainLease "leasehub-backend/internal/domain/lease"
	domainUnit "leasehub-backend/internal/domain/unit"
	"leasehub-backend/internal/logger"
	"leasehub-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateInput struct {
	PropertyID string
	UnitNumber string
}

// UnitDTO is a unit plus the lease currently occupying it, if any.
type UnitDTO struct {
	*domainUnit.Unit
	ActiveLeaseID *string `json:"active_lease_id"`
}

type Usecase struct {
	units  domainUnit.Repository
	leases domainLease.Repository
}

func NewUsecase(units domainUnit.Repository, leases domainLease.Repository) *Usecase {
	return &Usecase{units: units, leases: leases}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domainUnit.Unit, error) {
	prop := strings.TrimSpace(in.PropertyID)
	num := strings.TrimSpace(in.UnitNumber)
	if prop == "" || num == "" {
		return nil, domainLease.ValidationError("property_id and unit_number are required")
	}

	_, err := u.units.GetByPropertyAndNumber(ctx, prop, num)
	if err == nil {
		return nil, domainLease.ValidationError("unit %s already exists in property %s", num, prop)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLease.FromStore(err, "unit")
	}

	out := &domainUnit.Unit{UnitID: id.NewID32(), PropertyID: prop, UnitNumber: num}
	if err := u.units.Create(ctx, out); err != nil {
		return nil, domainLease.FromStore(err, "unit")
	}
	logger.InfoCtx(ctx, "unit created", zap.String("unit_id", out.UnitID), zap.String("property_id", prop))
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, unitID string) (*UnitDTO, error) {
	un, err := u.units.GetByUnitID(ctx, unitID)
	if err != nil {
		return nil, domainLease.FromStore(err, "unit %s", unitID)
	}
	dto := &UnitDTO{Unit: un}
	l, err := u.leases.GetActiveByUnitID(ctx, unitID)
	switch {
	case err == nil:
		dto.ActiveLeaseID = &l.LeaseID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainLease.FromStore(err, "unit %s", unitID)
	}
	return dto, nil
}
