package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
)

// InventoryFilter narrows inventory listings. Zero values mean "no filter".
type InventoryFilter struct {
	NGOID        *uint
	ResourceType string
	IsAvailable  *bool
	ExpiryBefore *time.Time
	ExpiryAfter  *time.Time
}

// ListInventory returns inventory rows matching the filter, most recently
// updated first.
func ListInventory(db *gorm.DB, f InventoryFilter) ([]models.NGOResourceInventory, error) {
	q := db.Model(&models.NGOResourceInventory{}).Preload("NGO")
	if f.NGOID != nil {
		q = q.Where("ngo_id = ?", *f.NGOID)
	}
	if f.ResourceType != "" {
		q = q.Where("LOWER(resource_type) LIKE ?", likePattern(f.ResourceType))
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	if f.ExpiryBefore != nil {
		q = q.Where("expiry_date < ?", *f.ExpiryBefore)
	}
	if f.ExpiryAfter != nil {
		q = q.Where("expiry_date > ?", *f.ExpiryAfter)
	}

	var items []models.NGOResourceInventory
	if err := q.Order("last_updated DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAvailableInventory returns rows eligible for allocation: available
// flag set AND quantity above zero. resourceType, if given, is matched as a
// case-insensitive substring; notExpiredAsOf excludes rows that expire
// before the reference date.
func ListAvailableInventory(db *gorm.DB, ngoID *uint, resourceType string, notExpiredAsOf *time.Time) ([]models.NGOResourceInventory, error) {
	q := db.Model(&models.NGOResourceInventory{}).
		Where("is_available = ?", true).
		Where("quantity > 0")
	if ngoID != nil {
		q = q.Where("ngo_id = ?", *ngoID)
	}
	if resourceType != "" {
		q = q.Where("LOWER(resource_type) LIKE ?", likePattern(resourceType))
	}
	if notExpiredAsOf != nil {
		q = q.Where("(expiry_date IS NULL OR expiry_date >= ?)", *notExpiredAsOf)
	}

	var items []models.NGOResourceInventory
	if err := q.Order("last_updated DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetInventoryItem loads one row with its NGO.
func GetInventoryItem(db *gorm.DB, inventoryID uint) (*models.NGOResourceInventory, error) {
	var item models.NGOResourceInventory
	if err := db.Preload("NGO").First(&item, inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "inventory item", ID: inventoryID}
		}
		return nil, err
	}
	return &item, nil
}

// CreateInventoryItem registers stock for an NGO. The NGO reference and a
// non-negative quantity are required.
func CreateInventoryItem(db *gorm.DB, item *models.NGOResourceInventory) error {
	if item.Quantity < 0 {
		return &apperrors.ValidationError{Msg: "quantity must not be negative"}
	}
	var count int64
	if err := db.Model(&models.NGO{}).Where("id = ?", item.NGOID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &apperrors.ValidationError{Msg: fmt.Sprintf("ngo %d does not exist", item.NGOID)}
	}

	item.IsAvailable = true
	item.LastUpdated = time.Now()
	return db.Create(item).Error
}

// InventoryUpdate carries optional field updates for one inventory row.
type InventoryUpdate struct {
	ResourceType *string    `json:"resource_type"`
	ResourceName *string    `json:"resource_name"`
	Quantity     *int       `json:"quantity"`
	Unit         *string    `json:"unit"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	IsAvailable  *bool      `json:"is_available"`
	Notes        *string    `json:"notes"`
}

// UpdateInventoryItem applies the provided fields.
func UpdateInventoryItem(db *gorm.DB, inventoryID uint, in InventoryUpdate) (*models.NGOResourceInventory, error) {
	var item models.NGOResourceInventory
	if err := db.First(&item, inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "inventory item", ID: inventoryID}
		}
		return nil, err
	}

	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, &apperrors.ValidationError{Msg: "quantity must not be negative"}
	}

	if in.ResourceType != nil {
		item.ResourceType = *in.ResourceType
	}
	if in.ResourceName != nil {
		item.ResourceName = *in.ResourceName
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = in.ExpiryDate
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.LastUpdated = time.Now()

	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ConsumeInventory decrements stock by amount. The decrement is a
// conditional UPDATE guarded by quantity >= amount, so two concurrent
// consumers can never drive the quantity negative: the second one sees zero
// rows affected and gets an InsufficientStockError. A row that reaches zero
// has its availability flag cleared.
func ConsumeInventory(db *gorm.DB, inventoryID uint, amount int) (*models.NGOResourceInventory, error) {
	if amount <= 0 {
		return nil, &apperrors.ValidationError{Msg: "amount must be positive"}
	}

	var item models.NGOResourceInventory
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.NGOResourceInventory{}).
			Where("id = ? AND quantity >= ?", inventoryID, amount).
			Updates(map[string]interface{}{
				"quantity":     gorm.Expr("quantity - ?", amount),
				"last_updated": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&item, inventoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &apperrors.NotFoundError{Resource: "inventory item", ID: inventoryID}
				}
				return err
			}
			return &apperrors.InsufficientStockError{
				InventoryID: inventoryID,
				Requested:   amount,
				Available:   item.Quantity,
			}
		}

		if err := tx.Model(&models.NGOResourceInventory{}).
			Where("id = ? AND quantity = 0", inventoryID).
			Update("is_available", false).Error; err != nil {
			return err
		}
		return tx.First(&item, inventoryID).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteInventoryItem removes a row, refusing while any service item still
// references it so the error can name the blockers.
func DeleteInventoryItem(db *gorm.DB, inventoryID uint) error {
	var item models.NGOResourceInventory
	if err := db.First(&item, inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "inventory item", ID: inventoryID}
		}
		return err
	}

	var refs []models.ServiceItem
	if err := db.Where("inventory_id = ?", inventoryID).Find(&refs).Error; err != nil {
		return err
	}
	if len(refs) > 0 {
		ids := make([]uint, len(refs))
		for i, r := range refs {
			ids[i] = r.ID
		}
		return &apperrors.ConflictError{
			Msg: fmt.Sprintf("inventory item %d is referenced by service items %v", inventoryID, ids),
		}
	}

	return db.Delete(&item).Error
}
