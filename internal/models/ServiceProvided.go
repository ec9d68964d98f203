package models

import (
	"time"

	"gorm.io/gorm"
)

// NGOServiceProvided is an ongoing assistance relationship between one NGO
// and one victim, as opposed to a one-time request. The first delivery log
// recorded against it promotes its status to "active".
type NGOServiceProvided struct {
	gorm.Model
	VictimID    uint      `json:"victim_id" gorm:"index"`
	Victim      Victim    `gorm:"foreignKey:VictimID" json:"victim,omitempty"`
	NGOID       uint      `json:"ngo_id" gorm:"index"`
	NGO         NGO       `gorm:"foreignKey:NGOID" json:"ngo,omitempty"`
	ServiceType string    `json:"service_type"`
	StartDate   time.Time `json:"start_date"`
	Status      string    `json:"status"` // "pending", "active", "completed", "cancelled"
	Notes       string    `json:"notes"`

	DeliveryLogs []ServiceDeliveryLog `gorm:"foreignKey:ServiceID" json:"delivery_logs,omitempty"`
}
