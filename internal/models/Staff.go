// internal/models/Staff.go
package models

import (
	"gorm.io/gorm"
)

// NGOStaff is a field worker or coordinator employed by an NGO.
// A member with service requests or delivery logs on record can only be
// deactivated, never deleted.
type NGOStaff struct {
	gorm.Model
	NGOID          uint   `json:"ngo_id" gorm:"index"`
	NGO            NGO    `gorm:"foreignKey:NGOID" json:"ngo,omitempty"`
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role"`
	Contact        string `json:"contact"`
	Email          string `gorm:"unique" json:"email"`
	Specialization string `json:"specialization"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
}
