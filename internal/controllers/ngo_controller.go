package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
)

// CreateNGO registers a new relief organization
func CreateNGO(c *gin.Context) {
	var input models.NGO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create NGO: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ngo": input})
}

// GetNGO retrieves an NGO by ID with its areas, inventory and staff
func GetNGO(c *gin.Context) {
	id := c.Param("id")
	var ngo models.NGO
	if err := config.DB.
		Preload("ServiceAreas").
		Preload("Inventory").
		Preload("Staff").
		First(&ngo, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "NGO not found"})
		return
	}

	var requests, services int64
	config.DB.Model(&models.ServiceRequest{}).Where("ngo_id = ?", ngo.ID).Count(&requests)
	config.DB.Model(&models.NGOServiceProvided{}).Where("ngo_id = ?", ngo.ID).Count(&services)

	c.JSON(http.StatusOK, gin.H{
		"ngo":            ngo,
		"request_count":  requests,
		"services_count": services,
	})
}

// ListNGOs lists NGOs, optionally filtered by activity and support type
func ListNGOs(c *gin.Context) {
	query := config.DB.Model(&models.NGO{})

	if active := c.Query("is_active"); active != "" {
		v, err := strconv.ParseBool(active)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_active parameter"})
			return
		}
		query = query.Where("is_active = ?", v)
	}
	if support := c.Query("support_type"); support != "" {
		query = query.Where("LOWER(support_type) LIKE ?", "%"+strings.ToLower(support)+"%")
	}

	var ngos []models.NGO
	if err := query.Order("name").Find(&ngos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch NGOs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ngos})
}

// UpdateNGO modifies an existing NGO
func UpdateNGO(c *gin.Context) {
	id := c.Param("id")
	var ngo models.NGO
	if err := config.DB.First(&ngo, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "NGO not found"})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Contact     *string `json:"contact"`
		Email       *string `json:"email"`
		SupportType *string `json:"support_type"`
		FocusArea   *string `json:"focus_area"`
		IsActive    *bool   `json:"is_active"`
		IsVerified  *bool   `json:"is_verified"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		ngo.Name = *input.Name
	}
	if input.Contact != nil {
		ngo.Contact = *input.Contact
	}
	if input.Email != nil {
		ngo.Email = *input.Email
	}
	if input.SupportType != nil {
		ngo.SupportType = *input.SupportType
	}
	if input.FocusArea != nil {
		ngo.FocusArea = *input.FocusArea
	}
	if input.IsActive != nil {
		ngo.IsActive = *input.IsActive
	}
	if input.IsVerified != nil {
		ngo.IsVerified = *input.IsVerified
	}

	config.DB.Save(&ngo)
	c.JSON(http.StatusOK, gin.H{"ngo": ngo})
}

// DeleteNGO removes an NGO. Organizations with service requests on record
// are deactivated instead so history stays intact.
func DeleteNGO(c *gin.Context) {
	id := c.Param("id")
	var ngo models.NGO
	if err := config.DB.First(&ngo, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "NGO not found"})
		return
	}

	var requests int64
	if err := config.DB.Model(&models.ServiceRequest{}).Where("ngo_id = ?", ngo.ID).Count(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check NGO references"})
		return
	}
	if requests > 0 {
		ngo.IsActive = false
		config.DB.Save(&ngo)
		c.JSON(http.StatusOK, gin.H{"message": "NGO has service requests on record, deactivated instead", "ngo": ngo})
		return
	}

	if err := config.DB.Delete(&ngo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete NGO"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "NGO deleted"})
}
