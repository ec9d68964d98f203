package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is a tragedy (flood, fire, collapse) victims are registered under.
// Latitude/Longitude are filled by forward geocoding of Location when the
// event is recorded; both stay NULL when geocoding failed or was skipped,
// and a missing coordinate is a normal state, not an error.
type Event struct {
	gorm.Model
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`

	Victims []Victim `gorm:"foreignKey:EventID" json:"victims,omitempty"`
}
