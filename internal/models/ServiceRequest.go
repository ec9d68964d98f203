// internal/models/ServiceRequest.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceRequest is a formal ask for one NGO to address one victim's need.
// Status walks pending -> approved -> in_progress -> completed, with denial
// possible from any non-terminal state. ResponseDate is stamped on the first
// move out of pending, CompletionDate on completion. Completed requests are
// immutable history and cannot be deleted.
type ServiceRequest struct {
	gorm.Model
	VictimID       uint       `json:"victim_id" gorm:"index"`
	Victim         Victim     `gorm:"foreignKey:VictimID" json:"victim,omitempty"`
	NGOID          uint       `json:"ngo_id" gorm:"index"`
	NGO            NGO        `gorm:"foreignKey:NGOID" json:"ngo,omitempty"`
	RequestType    string     `json:"request_type"`
	UrgencyLevel   string     `json:"urgency_level"` // "high", "medium", "low"
	Status         string     `json:"status"`        // "pending", "approved", "in_progress", "completed", "denied"
	RequestDate    time.Time  `json:"request_date"`
	RespondedBy    *uint      `json:"responded_by,omitempty"` // NGOStaff ID
	ResponseDate   *time.Time `json:"response_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Notes          string     `json:"notes"`

	ServiceItems []ServiceItem `gorm:"foreignKey:RequestID" json:"service_items,omitempty"`
}
