package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
)

// matchingNGOLimit caps the heuristic "who could help" lookup so responses
// stay bounded; it is a hint for staff, not a guarantee of capability.
const matchingNGOLimit = 5

func validUrgency(level string) bool {
	switch level {
	case "high", "medium", "low":
		return true
	}
	return false
}

// IdentifyNeed records a newly identified need for a victim, starting in
// "pending".
func IdentifyNeed(db *gorm.DB, victimID uint, needType, urgencyLevel, notes string) (*models.VictimNeed, error) {
	if needType == "" {
		return nil, &apperrors.ValidationError{Msg: "needType is required"}
	}
	if !validUrgency(urgencyLevel) {
		return nil, &apperrors.ValidationError{Msg: "urgency level must be high, medium, or low"}
	}

	var count int64
	if err := db.Model(&models.Victim{}).Where("id = ?", victimID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &apperrors.NotFoundError{Resource: "victim", ID: victimID}
	}

	need := models.VictimNeed{
		VictimID:       victimID,
		NeedType:       needType,
		UrgencyLevel:   urgencyLevel,
		Status:         "pending",
		DateIdentified: time.Now(),
		Notes:          notes,
	}
	if err := db.Create(&need).Error; err != nil {
		return nil, err
	}
	return &need, nil
}

// ResolveNeed marks a need addressed and stamps DateAddressed. Resolving an
// already addressed need is a no-op.
func ResolveNeed(db *gorm.DB, needID uint) (*models.VictimNeed, error) {
	var need models.VictimNeed
	if err := db.First(&need, needID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "victim need", ID: needID}
		}
		return nil, err
	}

	if need.Status == "addressed" {
		return &need, nil
	}

	need.Status = "addressed"
	if need.DateAddressed == nil {
		now := time.Now()
		need.DateAddressed = &now
	}
	if err := db.Save(&need).Error; err != nil {
		return nil, err
	}
	return &need, nil
}

// NeedUpdate carries optional field updates for one need.
type NeedUpdate struct {
	NeedType     *string `json:"need_type"`
	UrgencyLevel *string `json:"urgency_level"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

// UpdateNeed applies the provided fields. Moving status to "addressed"
// stamps DateAddressed if it was never set.
func UpdateNeed(db *gorm.DB, needID uint, in NeedUpdate) (*models.VictimNeed, error) {
	var need models.VictimNeed
	if err := db.First(&need, needID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "victim need", ID: needID}
		}
		return nil, err
	}

	if in.UrgencyLevel != nil && !validUrgency(*in.UrgencyLevel) {
		return nil, &apperrors.ValidationError{Msg: "urgency level must be high, medium, or low"}
	}
	if in.Status != nil {
		switch *in.Status {
		case "pending", "ongoing", "addressed":
		default:
			return nil, &apperrors.ValidationError{Msg: "status must be pending, ongoing, or addressed"}
		}
	}

	if in.NeedType != nil {
		need.NeedType = *in.NeedType
	}
	if in.UrgencyLevel != nil {
		need.UrgencyLevel = *in.UrgencyLevel
	}
	if in.Status != nil {
		need.Status = *in.Status
		if *in.Status == "addressed" && need.DateAddressed == nil {
			now := time.Now()
			need.DateAddressed = &now
		}
	}
	if in.Notes != nil {
		need.Notes = *in.Notes
	}

	if err := db.Save(&need).Error; err != nil {
		return nil, err
	}
	return &need, nil
}

// NeedFilter narrows need listings.
type NeedFilter struct {
	VictimID     *uint
	NeedType     string
	UrgencyLevel string
	Status       string
	Start        *time.Time
	End          *time.Time
}

// ListNeeds returns needs ordered most urgent first, then newest first.
func ListNeeds(db *gorm.DB, f NeedFilter) ([]models.VictimNeed, error) {
	q := db.Model(&models.VictimNeed{}).Preload("Victim")
	if f.VictimID != nil {
		q = q.Where("victim_id = ?", *f.VictimID)
	}
	if f.NeedType != "" {
		q = q.Where("LOWER(need_type) LIKE ?", likePattern(f.NeedType))
	}
	if f.UrgencyLevel != "" {
		q = q.Where("urgency_level = ?", f.UrgencyLevel)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Start != nil {
		q = q.Where("date_identified >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("date_identified <= ?", *f.End)
	}

	var needs []models.VictimNeed
	err := q.Order("CASE urgency_level WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END").
		Order("date_identified DESC").
		Find(&needs).Error
	if err != nil {
		return nil, err
	}
	return needs, nil
}

// NeedDetail is the composed read model for a single need: the need itself,
// the service requests raised for the same victim and type, and up to five
// NGOs that look capable of helping.
type NeedDetail struct {
	Need            models.VictimNeed       `json:"need"`
	ServiceRequests []models.ServiceRequest `json:"service_requests"`
	MatchingNGOs    []models.NGO            `json:"matching_ngos"`
}

// GetNeed loads the composed view for one need.
func GetNeed(db *gorm.DB, needID uint) (*NeedDetail, error) {
	var need models.VictimNeed
	if err := db.Preload("Victim").Preload("Victim.Event").First(&need, needID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "victim need", ID: needID}
		}
		return nil, err
	}

	var requests []models.ServiceRequest
	if err := db.Preload("NGO").
		Where("victim_id = ? AND LOWER(request_type) LIKE ?", need.VictimID, likePattern(need.NeedType)).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	ngos, err := FindMatchingNGOs(db, need.NeedType)
	if err != nil {
		return nil, err
	}

	return &NeedDetail{Need: need, ServiceRequests: requests, MatchingNGOs: ngos}, nil
}

// FindMatchingNGOs looks up active NGOs whose focus area or support type
// loosely matches the need type, capped at matchingNGOLimit.
func FindMatchingNGOs(db *gorm.DB, needType string) ([]models.NGO, error) {
	pattern := likePattern(needType)
	var ngos []models.NGO
	err := db.Where("is_active = ?", true).
		Where("(LOWER(focus_area) LIKE ? OR LOWER(support_type) LIKE ?)", pattern, pattern).
		Order("id").
		Limit(matchingNGOLimit).
		Find(&ngos).Error
	if err != nil {
		return nil, err
	}
	return ngos, nil
}

// DeleteNeed removes a need unless service requests of a matching type still
// exist for the same victim.
func DeleteNeed(db *gorm.DB, needID uint) error {
	var need models.VictimNeed
	if err := db.First(&need, needID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "victim need", ID: needID}
		}
		return err
	}

	var count int64
	if err := db.Model(&models.ServiceRequest{}).
		Where("victim_id = ? AND LOWER(request_type) LIKE ?", need.VictimID, likePattern(need.NeedType)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &apperrors.ConflictError{
			Msg: fmt.Sprintf("need %d has %d related service requests", needID, count),
		}
	}

	return db.Delete(&need).Error
}
