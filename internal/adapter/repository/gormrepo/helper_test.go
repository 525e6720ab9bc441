package gormrepo

import (
	"testing"
	"time"

	"leasehub-backend/internal/domain/lease"
	"leasehub-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory sqlite DB. A single connection
// keeps every query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLease(unitID string, endInDays int) *lease.Lease {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, endInDays)
	return &lease.Lease{
		LeaseID:       id.NewID32(),
		UnitID:        unitID,
		TenantName:    "Dewi Lestari",
		LeaseStart:    start,
		LeaseEnd:      &end,
		LeaseTerm:     lease.TermFixed,
		MonthlyRent:   decimal.NewFromInt(1400),
		Status:        lease.StatusActive,
		RenewalStatus: lease.RenewalPending,
		CreatedBy:     "cccccccccccccccccccccccccccccccc",
		Version:       1,
	}
}
