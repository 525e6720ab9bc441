package lease

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// EnsureVacant fails with ErrUnitOccupied when unitID already carries an
// active lease. Callers hold the unit row lock.
func EnsureVacant(ctx context.Context, leases Repository, unitID string) error {
	occupant, err := leases.GetActiveByUnitID(ctx, unitID)
	if err == nil {
		return fmt.Errorf("%w: unit %s is leased by %s", ErrUnitOccupied, unitID, occupant.LeaseID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
