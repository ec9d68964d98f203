package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
)

// CreateVictim registers a victim under an event
func CreateVictim(c *gin.Context) {
	var input models.Victim
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.EventID != 0 {
		var event models.Event
		if err := config.DB.First(&event, input.EventID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event with the provided event_id does not exist"})
			return
		}
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create victim: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"victim": input})
}

// GetVictim retrieves a victim by ID with event and needs
func GetVictim(c *gin.Context) {
	id := c.Param("id")
	var victim models.Victim
	if err := config.DB.Preload("Event").Preload("Needs").First(&victim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Victim not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"victim": victim})
}

// ListVictims lists victims, optionally filtered by event and status
func ListVictims(c *gin.Context) {
	query := config.DB.Model(&models.Victim{}).Preload("Event")

	if eventID := c.Query("event_id"); eventID != "" {
		id, err := strconv.ParseUint(eventID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id parameter"})
			return
		}
		query = query.Where("event_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var victims []models.Victim
	if err := query.Find(&victims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch victims"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": victims})
}

// UpdateVictim modifies an existing victim
func UpdateVictim(c *gin.Context) {
	id := c.Param("id")
	var victim models.Victim
	if err := config.DB.First(&victim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Victim not found"})
		return
	}

	var input struct {
		Name    *string `json:"name"`
		Gender  *string `json:"gender"`
		Status  *string `json:"status"`
		EventID *uint   `json:"event_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		victim.Name = *input.Name
	}
	if input.Gender != nil {
		victim.Gender = *input.Gender
	}
	if input.Status != nil {
		victim.Status = *input.Status
	}
	if input.EventID != nil {
		var event models.Event
		if err := config.DB.First(&event, *input.EventID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event with the provided event_id does not exist"})
			return
		}
		victim.EventID = *input.EventID
	}

	config.DB.Save(&victim)
	c.JSON(http.StatusOK, gin.H{"victim": victim})
}

// DeleteVictim removes a victim and their need records
func DeleteVictim(c *gin.Context) {
	id := c.Param("id")
	var victim models.Victim
	if err := config.DB.First(&victim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Victim not found"})
		return
	}

	var requests int64
	if err := config.DB.Model(&models.ServiceRequest{}).Where("victim_id = ?", victim.ID).Count(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check victim references"})
		return
	}
	if requests > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "victim has service requests on record, remove them first"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}
	if err := tx.Where("victim_id = ?", victim.ID).Delete(&models.VictimNeed{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete victim needs"})
		return
	}
	if err := tx.Delete(&victim).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete victim"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Victim deleted"})
}
