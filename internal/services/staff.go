package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
)

// CreateStaff registers a staff member under an existing NGO. Email, when
// given, must be unused.
func CreateStaff(db *gorm.DB, staff *models.NGOStaff) error {
	var count int64
	if err := db.Model(&models.NGO{}).Where("id = ?", staff.NGOID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &apperrors.NotFoundError{Resource: "ngo", ID: staff.NGOID}
	}

	if staff.Email != "" {
		if err := db.Model(&models.NGOStaff{}).Where("email = ?", staff.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &apperrors.ConflictError{Msg: "email is already in use"}
		}
	}

	staff.IsActive = true
	return db.Create(staff).Error
}

// StaffUpdate carries optional field updates for one staff member.
type StaffUpdate struct {
	Name           *string `json:"name"`
	Role           *string `json:"role"`
	Contact        *string `json:"contact"`
	Email          *string `json:"email"`
	Specialization *string `json:"specialization"`
	IsActive       *bool   `json:"is_active"`
}

// UpdateStaff applies the provided fields. Setting IsActive false is the
// deactivation path for members that cannot be deleted.
func UpdateStaff(db *gorm.DB, staffID uint, in StaffUpdate) (*models.NGOStaff, error) {
	var staff models.NGOStaff
	if err := db.First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "staff member", ID: staffID}
		}
		return nil, err
	}

	if in.Email != nil && *in.Email != staff.Email && *in.Email != "" {
		var count int64
		if err := db.Model(&models.NGOStaff{}).Where("email = ?", *in.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &apperrors.ConflictError{Msg: "email is already in use"}
		}
	}

	if in.Name != nil {
		staff.Name = *in.Name
	}
	if in.Role != nil {
		staff.Role = *in.Role
	}
	if in.Contact != nil {
		staff.Contact = *in.Contact
	}
	if in.Email != nil {
		staff.Email = *in.Email
	}
	if in.Specialization != nil {
		staff.Specialization = *in.Specialization
	}
	if in.IsActive != nil {
		staff.IsActive = *in.IsActive
	}

	if err := db.Save(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// DeleteStaff removes a member without history. Members with service
// requests or delivery logs on record must be deactivated instead.
func DeleteStaff(db *gorm.DB, staffID uint) error {
	var staff models.NGOStaff
	if err := db.First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "staff member", ID: staffID}
		}
		return err
	}

	var requests, logs int64
	if err := db.Model(&models.ServiceRequest{}).Where("responded_by = ?", staffID).Count(&requests).Error; err != nil {
		return err
	}
	if err := db.Model(&models.ServiceDeliveryLog{}).Where("staff_id = ?", staffID).Count(&logs).Error; err != nil {
		return err
	}
	if requests > 0 || logs > 0 {
		return &apperrors.ConflictError{
			Msg: fmt.Sprintf("staff member %d has %d service requests and %d delivery logs; deactivate instead of deleting",
				staffID, requests, logs),
		}
	}

	return db.Delete(&staff).Error
}

// StaffFilter narrows staff listings.
type StaffFilter struct {
	NGOID          *uint
	Role           string
	IsActive       *bool
	Specialization string
	Name           string
}

// ListStaff returns staff matching the filter, ordered by name.
func ListStaff(db *gorm.DB, f StaffFilter) ([]models.NGOStaff, error) {
	q := db.Model(&models.NGOStaff{}).Preload("NGO")
	if f.NGOID != nil {
		q = q.Where("ngo_id = ?", *f.NGOID)
	}
	if f.Role != "" {
		q = q.Where("LOWER(role) LIKE ?", likePattern(f.Role))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Specialization != "" {
		q = q.Where("LOWER(specialization) LIKE ?", likePattern(f.Specialization))
	}
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(f.Name))
	}

	var staff []models.NGOStaff
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
