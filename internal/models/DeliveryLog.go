package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceDeliveryLog is an append-only record of assistance actually being
// delivered. Rows are never mutated after creation.
type ServiceDeliveryLog struct {
	gorm.Model
	ServiceID           uint               `json:"service_id" gorm:"index"`
	Service             NGOServiceProvided `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	StaffID             uint               `json:"staff_id" gorm:"index"`
	Staff               NGOStaff           `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	DeliveryDate        time.Time          `json:"delivery_date"`
	Location            string             `json:"location"`
	Latitude            *float64           `json:"latitude,omitempty"`
	Longitude           *float64           `json:"longitude,omitempty"`
	Feedback            string             `json:"feedback"`
	EffectivenessRating *int               `json:"effectiveness_rating,omitempty"` // 1-5
	FollowupNeeded      bool               `json:"followup_needed"`
	FollowupDate        *time.Time         `json:"followup_date,omitempty"`
	Notes               string             `json:"notes"`
}
