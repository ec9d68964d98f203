package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
	"relief_tracker/internal/services"
)

// LogDelivery appends a delivery record to a service and notifies the
// NGO's live feed
func LogDelivery(c *gin.Context) {
	var input services.DeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := services.LogDelivery(config.DB, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	var service models.NGOServiceProvided
	if err := config.DB.First(&service, log.ServiceID).Error; err == nil {
		publishDeliveryLog(service.NGOID, log)
	}

	c.JSON(http.StatusCreated, gin.H{"delivery": log})
}

// ListDeliveries lists delivery logs matching the query filters, newest
// first
func ListDeliveries(c *gin.Context) {
	serviceID, ok := queryUintPtr(c, "service_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_id parameter"})
		return
	}
	staffID, ok := queryUintPtr(c, "staff_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id parameter"})
		return
	}
	followup, ok := queryBoolPtr(c, "followup_needed")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid followup_needed parameter"})
		return
	}
	rating, ok := queryIntPtr(c, "effectiveness_rating")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid effectiveness_rating parameter"})
		return
	}
	start, ok := queryTimePtr(c, "start")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}
	end, ok := queryTimePtr(c, "end")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	logs, err := services.ListDeliveries(config.DB, services.DeliveryFilter{
		ServiceID:           serviceID,
		StaffID:             staffID,
		FollowupNeeded:      followup,
		EffectivenessRating: rating,
		Location:            c.Query("location"),
		Start:               start,
		End:                 end,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch delivery logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}
