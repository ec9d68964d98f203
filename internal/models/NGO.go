// internal/models/NGO.go
package models

import (
	"gorm.io/gorm"
)

// NGO represents a relief organization registered with the platform.
// Service areas, resource inventory and staff all hang off it.
type NGO struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	Contact     string `json:"contact"`
	Email       string `gorm:"unique" json:"email"`
	SupportType string `json:"support_type"` // e.g. "Medical, Food"
	FocusArea   string `json:"focus_area"`   // e.g. "Flood relief"
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsVerified  bool   `json:"is_verified"`

	ServiceAreas []NGOServiceArea       `gorm:"foreignKey:NGOID" json:"service_areas,omitempty"`
	Inventory    []NGOResourceInventory `gorm:"foreignKey:NGOID" json:"inventory,omitempty"`
	Staff        []NGOStaff             `gorm:"foreignKey:NGOID" json:"staff,omitempty"`
}
