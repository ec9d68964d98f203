package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/services"
)

// CreateServiceRequest opens a pending request for a victim against an NGO
func CreateServiceRequest(c *gin.Context) {
	var input services.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := services.CreateServiceRequest(config.DB, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// GetServiceRequest retrieves a request with its items, victim and NGO
func GetServiceRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := services.GetServiceRequest(config.DB, id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request})
}

// ListServiceRequests lists requests matching the query filters
func ListServiceRequests(c *gin.Context) {
	ngoID, ok := queryUintPtr(c, "ngo_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ngo_id parameter"})
		return
	}
	victimID, ok := queryUintPtr(c, "victim_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid victim_id parameter"})
		return
	}
	staffID, ok := queryUintPtr(c, "staff_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id parameter"})
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

	requests, err := services.ListServiceRequests(config.DB, services.RequestFilter{
		NGOID:        ngoID,
		VictimID:     victimID,
		StaffID:      staffID,
		Status:       c.Query("status"),
		RequestType:  c.Query("request_type"),
		UrgencyLevel: c.Query("urgency_level"),
		Start:        start,
		End:          end,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch service requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// UpdateServiceRequest drives the request workflow: status transitions,
// responder assignment and service item upserts
func UpdateServiceRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input services.UpdateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := services.UpdateServiceRequestStatus(config.DB, id, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request})
}

// DeleteServiceRequest removes a non-completed request and its items
func DeleteServiceRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	if err := services.DeleteServiceRequest(config.DB, id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service request deleted"})
}
