package models

import (
	"gorm.io/gorm"
)

// NGOServiceArea is a circular coverage zone an NGO claims to serve.
// RadiusKm must be > 0; only active areas take part in geomatching.
type NGOServiceArea struct {
	gorm.Model
	NGOID        uint    `json:"ngo_id" gorm:"index"`
	NGO          NGO     `gorm:"foreignKey:NGOID" json:"ngo,omitempty"`
	LocationName string  `json:"location_name" binding:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusKm     float64 `json:"radius_km"`
	IsActive     bool    `json:"is_active" gorm:"default:true"`
}
