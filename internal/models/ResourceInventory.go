package models

import (
	"time"

	"gorm.io/gorm"
)

// NGOResourceInventory is one stock line of an NGO's relief supplies.
// Quantity is authoritative for allocation: a row with quantity 0 is never
// offered even while IsAvailable is still set. IsAvailable is an advisory
// gate staff can flip to pause an item without zeroing stock.
type NGOResourceInventory struct {
	gorm.Model
	NGOID        uint       `json:"ngo_id" gorm:"index"`
	NGO          NGO        `gorm:"foreignKey:NGOID" json:"ngo,omitempty"`
	ResourceType string     `json:"resource_type"` // free-text category, e.g. "Medical"
	ResourceName string     `json:"resource_name"`
	Quantity     int        `json:"quantity"`
	Unit         string     `json:"unit"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	IsAvailable  bool       `json:"is_available" gorm:"default:true"`
	LastUpdated  time.Time  `json:"last_updated"`
	Notes        string     `json:"notes"`
}
