package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceItem is a line item within a service request, optionally drawn
// against a specific inventory row. Items are only ever deleted by cascading
// deletion of their parent request.
type ServiceItem struct {
	gorm.Model
	RequestID    uint                  `json:"request_id" gorm:"index"`
	InventoryID  *uint                 `json:"inventory_id,omitempty"`
	Inventory    *NGOResourceInventory `gorm:"foreignKey:InventoryID" json:"inventory,omitempty"`
	ServiceType  string                `json:"service_type"`
	Quantity     int                   `json:"quantity" gorm:"default:1"`
	Status       string                `json:"status"` // "pending", "delivered", "cancelled"
	DeliveryDate *time.Time            `json:"delivery_date,omitempty"`
	Notes        string                `json:"notes"`
}
