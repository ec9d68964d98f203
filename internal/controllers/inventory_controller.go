package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
	"relief_tracker/internal/services"
)

// CreateInventoryItem registers a stock line for an NGO
func CreateInventoryItem(c *gin.Context) {
	var input models.NGOResourceInventory
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.CreateInventoryItem(config.DB, &input); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inventory": input})
}

// GetInventoryItem retrieves one stock line
func GetInventoryItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory id"})
		return
	}

	item, err := services.GetInventoryItem(config.DB, id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": item})
}

// ListInventory lists stock lines matching the query filters
func ListInventory(c *gin.Context) {
	ngoID, ok := queryUintPtr(c, "ngo_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ngo_id parameter"})
		return
	}
	available, ok := queryBoolPtr(c, "is_available")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_available parameter"})
		return
	}
	expiryBefore, ok := queryTimePtr(c, "expiry_before")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_before parameter"})
		return
	}
	expiryAfter, ok := queryTimePtr(c, "expiry_after")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_after parameter"})
		return
	}

	items, err := services.ListInventory(config.DB, services.InventoryFilter{
		NGOID:        ngoID,
		ResourceType: c.Query("resource_type"),
		IsAvailable:  available,
		ExpiryBefore: expiryBefore,
		ExpiryAfter:  expiryAfter,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ListAvailableInventory lists allocatable stock: available, in quantity
// and not expired as of now
func ListAvailableInventory(c *gin.Context) {
	ngoID, ok := queryUintPtr(c, "ngo_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ngo_id parameter"})
		return
	}

	now := time.Now()
	items, err := services.ListAvailableInventory(config.DB, ngoID, c.Query("resource_type"), &now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch available inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// UpdateInventoryItem modifies a stock line
func UpdateInventoryItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory id"})
		return
	}

	var input services.InventoryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := services.UpdateInventoryItem(config.DB, id, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": item})
}

// ConsumeInventory atomically decrements a stock line
func ConsumeInventory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory id"})
		return
	}

	var input struct {
		Amount int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := services.ConsumeInventory(config.DB, id, input.Amount)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": item})
}

// DeleteInventoryItem removes an unreferenced stock line
func DeleteInventoryItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory id"})
		return
	}

	if err := services.DeleteInventoryItem(config.DB, id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
}
