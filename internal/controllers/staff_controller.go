package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
	"relief_tracker/internal/services"
)

// CreateStaff registers a staff member under an NGO
func CreateStaff(c *gin.Context) {
	var input models.NGOStaff
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.CreateStaff(config.DB, &input); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"staff": input})
}

// GetStaff retrieves a staff member by ID
func GetStaff(c *gin.Context) {
	id := c.Param("id")
	var staff models.NGOStaff
	if err := config.DB.Preload("NGO").First(&staff, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// ListStaff lists staff matching the query filters
func ListStaff(c *gin.Context) {
	ngoID, ok := queryUintPtr(c, "ngo_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ngo_id parameter"})
		return
	}
	active, ok := queryBoolPtr(c, "is_active")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_active parameter"})
		return
	}

	staff, err := services.ListStaff(config.DB, services.StaffFilter{
		NGOID:          ngoID,
		Role:           c.Query("role"),
		IsActive:       active,
		Specialization: c.Query("specialization"),
		Name:           c.Query("name"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": staff})
}

// UpdateStaff modifies a staff member
func UpdateStaff(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	var input services.StaffUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := services.UpdateStaff(config.DB, id, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// DeleteStaff removes a staff member with no activity on record
func DeleteStaff(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	if err := services.DeleteStaff(config.DB, id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}
