package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
)

// DeliveryInput holds one delivery event to record.
type DeliveryInput struct {
	ServiceID           uint       `json:"service_id"`
	StaffID             uint       `json:"staff_id"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	Location            string     `json:"location"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	Feedback            string     `json:"feedback"`
	EffectivenessRating *int       `json:"effectiveness_rating"`
	FollowupNeeded      bool       `json:"followup_needed"`
	FollowupDate        *time.Time `json:"followup_date"`
	Notes               string     `json:"notes"`
}

// LogDelivery appends a delivery record against an active service. The
// staff member must belong to the service's NGO. The first delivery promotes
// the service to "active"; log and promotion commit together.
func LogDelivery(db *gorm.DB, in DeliveryInput) (*models.ServiceDeliveryLog, error) {
	if in.EffectivenessRating != nil && (*in.EffectivenessRating < 1 || *in.EffectivenessRating > 5) {
		return nil, &apperrors.ValidationError{Msg: "effectiveness rating must be between 1 and 5"}
	}

	var service models.NGOServiceProvided
	if err := db.First(&service, in.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "service", ID: in.ServiceID}
		}
		return nil, err
	}
	var staff models.NGOStaff
	if err := db.First(&staff, in.StaffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "staff member", ID: in.StaffID}
		}
		return nil, err
	}
	if staff.NGOID != service.NGOID {
		return nil, &apperrors.ConflictError{
			Msg: fmt.Sprintf("staff member %d belongs to ngo %d, not the service provider ngo %d",
				staff.ID, staff.NGOID, service.NGOID),
		}
	}

	log := models.ServiceDeliveryLog{
		ServiceID:           in.ServiceID,
		StaffID:             in.StaffID,
		DeliveryDate:        time.Now(),
		Location:            in.Location,
		Latitude:            in.Latitude,
		Longitude:           in.Longitude,
		Feedback:            in.Feedback,
		EffectivenessRating: in.EffectivenessRating,
		FollowupNeeded:      in.FollowupNeeded,
		FollowupDate:        in.FollowupDate,
		Notes:               in.Notes,
	}
	if in.DeliveryDate != nil {
		log.DeliveryDate = *in.DeliveryDate
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&log).Error; err != nil {
			return err
		}
		if service.Status != "active" {
			return tx.Model(&service).Update("status", "active").Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// DeliveryFilter narrows delivery-log listings.
type DeliveryFilter struct {
	ServiceID           *uint
	StaffID             *uint
	FollowupNeeded      *bool
	EffectivenessRating *int
	Location            string
	Start               *time.Time
	End                 *time.Time
}

// ListDeliveries returns delivery logs matching the filter, newest first.
func ListDeliveries(db *gorm.DB, f DeliveryFilter) ([]models.ServiceDeliveryLog, error) {
	q := db.Model(&models.ServiceDeliveryLog{}).
		Preload("Service").
		Preload("Service.Victim").
		Preload("Service.NGO").
		Preload("Staff")
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.StaffID != nil {
		q = q.Where("staff_id = ?", *f.StaffID)
	}
	if f.FollowupNeeded != nil {
		q = q.Where("followup_needed = ?", *f.FollowupNeeded)
	}
	if f.EffectivenessRating != nil {
		q = q.Where("effectiveness_rating = ?", *f.EffectivenessRating)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", likePattern(f.Location))
	}
	if f.Start != nil {
		q = q.Where("delivery_date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("delivery_date <= ?", *f.End)
	}

	var logs []models.ServiceDeliveryLog
	if err := q.Order("delivery_date DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
