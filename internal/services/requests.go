package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
)

// requestTransitions is the legal state machine for service requests.
// completed and denied are terminal.
var requestTransitions = map[string][]string{
	"pending":     {"approved", "denied"},
	"approved":    {"in_progress", "denied"},
	"in_progress": {"completed", "denied"},
	"completed":   {},
	"denied":      {},
}

func validRequestStatus(status string) bool {
	_, ok := requestTransitions[status]
	return ok
}

func transitionAllowed(from, to string) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ServiceItemInput is one line item in a create or update call. A set
// ServiceItemID updates an existing item of the request; otherwise a new
// item is created.
type ServiceItemInput struct {
	ServiceItemID *uint      `json:"service_item_id"`
	InventoryID   *uint      `json:"inventory_id"`
	ServiceType   string     `json:"service_type"`
	Quantity      *int       `json:"quantity"`
	Status        string     `json:"status"`
	DeliveryDate  *time.Time `json:"delivery_date"`
	Notes         *string    `json:"notes"`
}

// CreateRequestInput holds everything needed to open a service request.
type CreateRequestInput struct {
	VictimID     uint               `json:"victim_id"`
	NGOID        uint               `json:"ngo_id"`
	RequestType  string             `json:"request_type"`
	UrgencyLevel string             `json:"urgency_level"`
	Notes        string             `json:"notes"`
	ServiceItems []ServiceItemInput `json:"service_items"`
}

// CreateServiceRequest opens a request in "pending" with any provided items.
// After the request is committed, a matching need record is ensured for the
// victim; that write is best-effort and its failure is logged, never
// propagated.
func CreateServiceRequest(db *gorm.DB, in CreateRequestInput) (*models.ServiceRequest, error) {
	if in.RequestType == "" {
		return nil, &apperrors.ValidationError{Msg: "requestType is required"}
	}
	in.UrgencyLevel = strings.ToLower(in.UrgencyLevel)
	if !validUrgency(in.UrgencyLevel) {
		return nil, &apperrors.ValidationError{Msg: "urgency level must be high, medium, or low"}
	}

	var victim models.Victim
	if err := db.First(&victim, in.VictimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "victim", ID: in.VictimID}
		}
		return nil, err
	}
	var ngo models.NGO
	if err := db.First(&ngo, in.NGOID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "ngo", ID: in.NGOID}
		}
		return nil, err
	}

	request := models.ServiceRequest{
		VictimID:     in.VictimID,
		NGOID:        in.NGOID,
		RequestType:  in.RequestType,
		UrgencyLevel: in.UrgencyLevel,
		Status:       "pending",
		RequestDate:  time.Now(),
		Notes:        in.Notes,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		for _, it := range in.ServiceItems {
			item := models.ServiceItem{
				RequestID:   request.ID,
				InventoryID: it.InventoryID,
				ServiceType: it.ServiceType,
				Quantity:    1,
				Status:      "pending",
			}
			if it.Quantity != nil {
				item.Quantity = *it.Quantity
			}
			if it.Notes != nil {
				item.Notes = *it.Notes
			}
			if item.Quantity < 1 {
				return &apperrors.ValidationError{Msg: "service item quantity must be at least 1"}
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			request.ServiceItems = append(request.ServiceItems, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Non-fatal: the request stands even if the need record cannot be
	// written.
	if err := ensureNeedRecord(db, in.VictimID, in.RequestType, in.UrgencyLevel, ngo.Name); err != nil {
		logrus.WithError(err).WithField("request_id", request.ID).
			Warn("could not ensure need record for new service request")
	}

	return &request, nil
}

// ensureNeedRecord makes sure the victim has an open need matching the
// request type, creating one tagged with the NGO's name if absent.
func ensureNeedRecord(db *gorm.DB, victimID uint, needType, urgencyLevel, ngoName string) error {
	var count int64
	err := db.Model(&models.VictimNeed{}).
		Where("victim_id = ? AND LOWER(need_type) = ?", victimID, strings.ToLower(needType)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	need := models.VictimNeed{
		VictimID:       victimID,
		NeedType:       needType,
		UrgencyLevel:   urgencyLevel,
		Status:         "pending",
		DateIdentified: time.Now(),
		Notes:          fmt.Sprintf("Service requested from %s", ngoName),
	}
	return db.Create(&need).Error
}

// UpdateRequestInput carries a status transition and optional field and item
// updates.
type UpdateRequestInput struct {
	Status       string             `json:"status"`
	UrgencyLevel *string            `json:"urgency_level"`
	Notes        *string            `json:"notes"`
	StaffID      *uint              `json:"staff_id"`
	ServiceItems []ServiceItemInput `json:"service_items"`
}

// UpdateServiceRequestStatus drives the request state machine. It validates
// the transition, enforces staff affiliation with the request's NGO, stamps
// ResponseDate on the first move out of pending and CompletionDate on
// completion, and upserts service items, all in one transaction. A
// transition to completed afterwards resolves the victim's matching needs,
// best-effort.
func UpdateServiceRequestStatus(db *gorm.DB, requestID uint, in UpdateRequestInput) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := db.Preload("ServiceItems").First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "service request", ID: requestID}
		}
		return nil, err
	}

	changingStatus := in.Status != "" && in.Status != request.Status
	if in.Status != "" && !validRequestStatus(in.Status) {
		return nil, &apperrors.ValidationError{Msg: "invalid status value"}
	}
	if changingStatus && !transitionAllowed(request.Status, in.Status) {
		return nil, &apperrors.InvalidTransitionError{From: request.Status, To: in.Status}
	}
	if in.UrgencyLevel != nil && !validUrgency(*in.UrgencyLevel) {
		return nil, &apperrors.ValidationError{Msg: "urgency level must be high, medium, or low"}
	}

	if in.StaffID != nil {
		var staff models.NGOStaff
		if err := db.First(&staff, *in.StaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &apperrors.NotFoundError{Resource: "staff member", ID: *in.StaffID}
			}
			return nil, err
		}
		if staff.NGOID != request.NGOID {
			return nil, &apperrors.ConflictError{
				Msg: fmt.Sprintf("staff member %d belongs to ngo %d, not the request's ngo %d",
					staff.ID, staff.NGOID, request.NGOID),
			}
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if changingStatus {
			wasPending := request.Status == "pending"
			request.Status = in.Status
			if wasPending && request.ResponseDate == nil {
				request.ResponseDate = &now
			}
			if in.Status == "completed" && request.CompletionDate == nil {
				request.CompletionDate = &now
			}
		}
		if in.StaffID != nil {
			request.RespondedBy = in.StaffID
		}
		if in.UrgencyLevel != nil {
			request.UrgencyLevel = *in.UrgencyLevel
		}
		if in.Notes != nil {
			request.Notes = *in.Notes
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		for _, it := range in.ServiceItems {
			if err := upsertServiceItem(tx, &request, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Non-fatal cascade: a completed request addresses the victim's
	// matching needs.
	if changingStatus && in.Status == "completed" {
		if err := resolveMatchingNeeds(db, request.VictimID, request.RequestType); err != nil {
			logrus.WithError(err).WithField("request_id", request.ID).
				Warn("could not resolve victim needs for completed request")
		}
	}

	if err := db.Preload("ServiceItems").First(&request, request.ID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func upsertServiceItem(tx *gorm.DB, request *models.ServiceRequest, in ServiceItemInput) error {
	if in.ServiceItemID != nil {
		var existing *models.ServiceItem
		for i := range request.ServiceItems {
			if request.ServiceItems[i].ID == *in.ServiceItemID {
				existing = &request.ServiceItems[i]
				break
			}
		}
		if existing == nil {
			return &apperrors.NotFoundError{Resource: "service item", ID: *in.ServiceItemID}
		}

		if in.ServiceType != "" {
			existing.ServiceType = in.ServiceType
		}
		if in.Quantity != nil {
			if *in.Quantity < 1 {
				return &apperrors.ValidationError{Msg: "service item quantity must be at least 1"}
			}
			existing.Quantity = *in.Quantity
		}
		if in.Status != "" {
			existing.Status = in.Status
		}
		if in.DeliveryDate != nil {
			existing.DeliveryDate = in.DeliveryDate
		}
		if in.Notes != nil {
			existing.Notes = *in.Notes
		}
		return tx.Save(existing).Error
	}

	item := models.ServiceItem{
		RequestID:    request.ID,
		InventoryID:  in.InventoryID,
		ServiceType:  in.ServiceType,
		Quantity:     1,
		Status:       "pending",
		DeliveryDate: in.DeliveryDate,
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Status != "" {
		item.Status = in.Status
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if item.Quantity < 1 {
		return &apperrors.ValidationError{Msg: "service item quantity must be at least 1"}
	}
	return tx.Create(&item).Error
}

// resolveMatchingNeeds marks the victim's needs of the given type addressed.
func resolveMatchingNeeds(db *gorm.DB, victimID uint, requestType string) error {
	now := time.Now()
	return db.Model(&models.VictimNeed{}).
		Where("victim_id = ? AND LOWER(need_type) = ? AND status <> ?",
			victimID, strings.ToLower(requestType), "addressed").
		Updates(map[string]interface{}{
			"status":         "addressed",
			"date_addressed": now,
		}).Error
}

// GetServiceRequest loads one request with its associations.
func GetServiceRequest(db *gorm.DB, requestID uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := db.Preload("Victim").
		Preload("NGO").
		Preload("ServiceItems").
		Preload("ServiceItems.Inventory").
		First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "service request", ID: requestID}
		}
		return nil, err
	}
	return &request, nil
}

// RequestFilter narrows request listings.
type RequestFilter struct {
	NGOID        *uint
	VictimID     *uint
	StaffID      *uint
	Status       string
	RequestType  string
	UrgencyLevel string
	Start        *time.Time
	End          *time.Time
}

// ListServiceRequests returns requests matching the filter, newest first.
func ListServiceRequests(db *gorm.DB, f RequestFilter) ([]models.ServiceRequest, error) {
	q := db.Model(&models.ServiceRequest{}).
		Preload("Victim").
		Preload("NGO").
		Preload("ServiceItems")
	if f.NGOID != nil {
		q = q.Where("ngo_id = ?", *f.NGOID)
	}
	if f.VictimID != nil {
		q = q.Where("victim_id = ?", *f.VictimID)
	}
	if f.StaffID != nil {
		q = q.Where("responded_by = ?", *f.StaffID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RequestType != "" {
		q = q.Where("LOWER(request_type) LIKE ?", likePattern(f.RequestType))
	}
	if f.UrgencyLevel != "" {
		q = q.Where("urgency_level = ?", f.UrgencyLevel)
	}
	if f.Start != nil {
		q = q.Where("request_date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("request_date <= ?", *f.End)
	}

	var requests []models.ServiceRequest
	if err := q.Order("request_date DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// DeleteServiceRequest removes a request and its items. Completed requests
// are immutable history and refuse deletion.
func DeleteServiceRequest(db *gorm.DB, requestID uint) error {
	var request models.ServiceRequest
	if err := db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "service request", ID: requestID}
		}
		return err
	}

	if request.Status == "completed" {
		return &apperrors.ConflictError{Msg: "cannot delete a completed service request"}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).Delete(&models.ServiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&request).Error
	})
}
