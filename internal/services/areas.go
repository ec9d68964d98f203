package services

import (
	"errors"

	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
)

// CreateServiceArea registers a coverage circle for an existing NGO. The
// radius must be positive; a zero-radius area could never match anything.
func CreateServiceArea(db *gorm.DB, area *models.NGOServiceArea) error {
	if area.RadiusKm <= 0 {
		return &apperrors.ValidationError{Msg: "radius must be greater than zero"}
	}
	var count int64
	if err := db.Model(&models.NGO{}).Where("id = ?", area.NGOID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &apperrors.NotFoundError{Resource: "ngo", ID: area.NGOID}
	}

	area.IsActive = true
	return db.Create(area).Error
}

// AreaUpdate carries optional field updates for one service area.
type AreaUpdate struct {
	LocationName *string  `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusKm     *float64 `json:"radius_km"`
	IsActive     *bool    `json:"is_active"`
}

// UpdateServiceArea applies the provided fields.
func UpdateServiceArea(db *gorm.DB, areaID uint, in AreaUpdate) (*models.NGOServiceArea, error) {
	var area models.NGOServiceArea
	if err := db.First(&area, areaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "service area", ID: areaID}
		}
		return nil, err
	}

	if in.RadiusKm != nil && *in.RadiusKm <= 0 {
		return nil, &apperrors.ValidationError{Msg: "radius must be greater than zero"}
	}

	if in.LocationName != nil {
		area.LocationName = *in.LocationName
	}
	if in.Latitude != nil {
		area.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		area.Longitude = *in.Longitude
	}
	if in.RadiusKm != nil {
		area.RadiusKm = *in.RadiusKm
	}
	if in.IsActive != nil {
		area.IsActive = *in.IsActive
	}

	if err := db.Save(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// DeleteServiceArea removes a coverage circle.
func DeleteServiceArea(db *gorm.DB, areaID uint) error {
	var area models.NGOServiceArea
	if err := db.First(&area, areaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "service area", ID: areaID}
		}
		return err
	}
	return db.Delete(&area).Error
}

// AreaFilter narrows service-area listings.
type AreaFilter struct {
	NGOID        *uint
	IsActive     *bool
	LocationName string
}

// ListServiceAreas returns areas matching the filter.
func ListServiceAreas(db *gorm.DB, f AreaFilter) ([]models.NGOServiceArea, error) {
	q := db.Model(&models.NGOServiceArea{}).Preload("NGO")
	if f.NGOID != nil {
		q = q.Where("ngo_id = ?", *f.NGOID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.LocationName != "" {
		q = q.Where("LOWER(location_name) LIKE ?", likePattern(f.LocationName))
	}

	var areas []models.NGOServiceArea
	if err := q.Order("id").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}
