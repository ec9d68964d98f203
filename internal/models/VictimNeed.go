package models

import (
	"time"

	"gorm.io/gorm"
)

// VictimNeed is an identified requirement for assistance (medical, shelter,
// food...). DateAddressed is set exactly once, when status moves to
// "addressed".
type VictimNeed struct {
	gorm.Model
	VictimID       uint       `json:"victim_id" gorm:"index"`
	Victim         Victim     `gorm:"foreignKey:VictimID" json:"victim,omitempty"`
	NeedType       string     `json:"need_type"`
	UrgencyLevel   string     `json:"urgency_level"` // "high", "medium", "low"
	Status         string     `json:"status"`        // "pending", "ongoing", "addressed"
	DateIdentified time.Time  `json:"date_identified"`
	DateAddressed  *time.Time `json:"date_addressed,omitempty"`
	Notes          string     `json:"notes"`
}
