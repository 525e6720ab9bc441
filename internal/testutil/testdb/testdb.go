package testdb

import (
	"path/filepath"
	"testing"
	"time"

	"leasehub-backend/internal/adapter/repository/gormrepo"
	"leasehub-backend/internal/domain/lease"
	"leasehub-backend/internal/domain/unit"
	"leasehub-backend/pkg/id"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory sqlite DB pinned to one connection, so
// reads outside a transaction must not run while one is open.
func Open(t testing.TB) *gorm.DB {
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

	if err := db.AutoMigrate(gormrepo.Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// OpenShared returns a migrated sqlite DB in a temp file with conns open
// connections, so transactions from different goroutines really contend.
// Writers take the database lock at BEGIN and wait out the busy timeout.
func OpenShared(t testing.TB, conns int) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "leasehub.db") + "?_busy_timeout=10000&_txlock=immediate&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	sqlDB.SetMaxIdleConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(gormrepo.Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// UoW is a gorm unit of work that retries conflicts without sleeping.
func UoW(db *gorm.DB) *gormrepo.GormUoW {
	return gormrepo.NewGormUoW(db).WithBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
	})
}

func SeedUnit(t testing.TB, db *gorm.DB, number string) *unit.Unit {
	t.Helper()
	u := &unit.Unit{UnitID: id.NewID32(), PropertyID: "pppppppppppppppppppppppppppppppp", UnitNumber: number}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	return u
}

// SeedLease inserts an active fixed-term lease directly, without a log.
func SeedLease(t testing.TB, db *gorm.DB, unitID string, start, end time.Time, rent int64) *lease.Lease {
	t.Helper()
	l := &lease.Lease{
		LeaseID:       id.NewID32(),
		UnitID:        unitID,
		TenantName:    "Budi Santoso",
		LeaseStart:    start,
		LeaseEnd:      &end,
		LeaseTerm:     lease.TermFixed,
		MonthlyRent:   decimal.NewFromInt(rent),
		Status:        lease.StatusActive,
		RenewalStatus: lease.RenewalPending,
		CreatedBy:     "cccccccccccccccccccccccccccccccc",
		Version:       1,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed lease: %v", err)
	}
	return l
}

func Count(t testing.TB, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
