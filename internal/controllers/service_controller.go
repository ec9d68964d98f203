package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
)

// CreateService opens an assistance relationship between an NGO and a
// victim. It starts in "pending" until the first delivery is logged.
func CreateService(c *gin.Context) {
	var input models.NGOServiceProvided
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var victim models.Victim
	if err := config.DB.First(&victim, input.VictimID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "victim with the provided victim_id does not exist"})
		return
	}
	var ngo models.NGO
	if err := config.DB.First(&ngo, input.NGOID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "NGO with the provided ngo_id does not exist"})
		return
	}

	if input.StartDate.IsZero() {
		input.StartDate = time.Now()
	}
	if input.Status == "" {
		input.Status = "pending"
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create service: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": input})
}

// GetService retrieves a service with its delivery history
func GetService(c *gin.Context) {
	id := c.Param("id")
	var service models.NGOServiceProvided
	if err := config.DB.
		Preload("Victim").
		Preload("NGO").
		Preload("DeliveryLogs").
		First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": service})
}

// ListServices lists assistance relationships matching the query filters
func ListServices(c *gin.Context) {
	query := config.DB.Model(&models.NGOServiceProvided{}).Preload("Victim").Preload("NGO")

	ngoID, ok := queryUintPtr(c, "ngo_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ngo_id parameter"})
		return
	}
	if ngoID != nil {
		query = query.Where("ngo_id = ?", *ngoID)
	}
	victimID, ok := queryUintPtr(c, "victim_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid victim_id parameter"})
		return
	}
	if victimID != nil {
		query = query.Where("victim_id = ?", *victimID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var services []models.NGOServiceProvided
	if err := query.Order("start_date desc").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": services})
}

// UpdateService modifies a service's type, status or notes
func UpdateService(c *gin.Context) {
	id := c.Param("id")
	var service models.NGOServiceProvided
	if err := config.DB.First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var input struct {
		ServiceType *string `json:"service_type"`
		Status      *string `json:"status"`
		Notes       *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != nil {
		switch *input.Status {
		case "pending", "active", "completed", "cancelled":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service status"})
			return
		}
		service.Status = *input.Status
	}
	if input.ServiceType != nil {
		service.ServiceType = *input.ServiceType
	}
	if input.Notes != nil {
		service.Notes = *input.Notes
	}

	config.DB.Save(&service)
	c.JSON(http.StatusOK, gin.H{"service": service})
}

// DeleteService removes a service that never had a delivery logged
func DeleteService(c *gin.Context) {
	id := c.Param("id")
	var service models.NGOServiceProvided
	if err := config.DB.First(&service, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var logs int64
	if err := config.DB.Model(&models.ServiceDeliveryLog{}).Where("service_id = ?", service.ID).Count(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check service references"})
		return
	}
	if logs > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "service has delivery logs on record, cancel it instead"})
		return
	}

	if err := config.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
