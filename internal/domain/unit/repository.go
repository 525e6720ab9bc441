package unit

import "context"

type Repository interface {
	Create(ctx context.Context, u *Unit) error
	GetByUnitID(ctx context.Context, unitID string) (*Unit, error)
	// Serializes concurrent occupancy changes on the same unit
	GetByUnitIDForUpdate(ctx context.Context, unitID string) (*Unit, error)
	GetByPropertyAndNumber(ctx context.Context, propertyID, unitNumber string) (*Unit, error)
}
