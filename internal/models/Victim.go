package models

import (
	"gorm.io/gorm"
)

type Victim struct {
	gorm.Model
	Name    string `json:"name" binding:"required"`
	Gender  string `json:"gender"`
	Status  string `json:"status"` // "injured", "missing", "safe", "deceased"
	EventID uint   `json:"event_id" gorm:"index"`
	Event   Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`

	Needs []VictimNeed `gorm:"foreignKey:VictimID" json:"needs,omitempty"`
}
