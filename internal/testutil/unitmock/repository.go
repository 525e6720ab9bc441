package unitmock

import (
	"context"

	domain "leasehub-backend/internal/domain/unit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, u *domain.Unit) error
	GetByUnitIDFn            func(ctx context.Context, unitID string) (*domain.Unit, error)
	GetByUnitIDForUpdateFn   func(ctx context.Context, unitID string) (*domain.Unit, error)
	GetByPropertyAndNumberFn func(ctx context.Context, propertyID, unitNumber string) (*domain.Unit, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.Unit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUnitID(ctx context.Context, unitID string) (*domain.Unit, error) {
	if m.GetByUnitIDFn != nil {
		return m.GetByUnitIDFn(ctx, unitID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUnitIDForUpdate(ctx context.Context, unitID string) (*domain.Unit, error) {
	if m.GetByUnitIDForUpdateFn != nil {
		return m.GetByUnitIDForUpdateFn(ctx, unitID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPropertyAndNumber(ctx context.Context, propertyID, unitNumber string) (*domain.Unit, error) {
	if m.GetByPropertyAndNumberFn != nil {
		return m.GetByPropertyAndNumberFn(ctx, propertyID, unitNumber)
	}
	return nil, context.Canceled
}
