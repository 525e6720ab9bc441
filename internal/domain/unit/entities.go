package unit

import (
	"time"

	"gorm.io/gorm"
)

// Unit is a rentable space that belongs to a property.
type Unit struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	UnitID     string         `gorm:"size:32;uniqueIndex:ux_units_unit_id" json:"unit_id"`
	PropertyID string         `gorm:"size:32;not null;uniqueIndex:ux_units_property_number" json:"property_id"`
	UnitNumber string         `gorm:"size:32;not null;uniqueIndex:ux_units_property_number" json:"unit_number"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Unit) TableName() string { return "units" }
