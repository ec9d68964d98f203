package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/services"
)

// IdentifyNeed records a new need for a victim
func IdentifyNeed(c *gin.Context) {
	var input struct {
		VictimID     uint   `json:"victim_id" binding:"required"`
		NeedType     string `json:"need_type" binding:"required"`
		UrgencyLevel string `json:"urgency_level"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	need, err := services.IdentifyNeed(config.DB, input.VictimID, input.NeedType, input.UrgencyLevel, input.Notes)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"need": need})
}

// GetNeed retrieves the composed view for one need: the record itself, the
// victim's service requests and the NGOs able to address it
func GetNeed(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid need id"})
		return
	}

	detail, err := services.GetNeed(config.DB, id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListNeeds lists needs, most urgent first
func ListNeeds(c *gin.Context) {
	victimID, ok := queryUintPtr(c, "victim_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid victim_id parameter"})
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

	needs, err := services.ListNeeds(config.DB, services.NeedFilter{
		VictimID:     victimID,
		NeedType:     c.Query("need_type"),
		UrgencyLevel: c.Query("urgency_level"),
		Status:       c.Query("status"),
		Start:        start,
		End:          end,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch needs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": needs})
}

// UpdateNeed modifies an existing need
func UpdateNeed(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid need id"})
		return
	}

	var input services.NeedUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	need, err := services.UpdateNeed(config.DB, id, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"need": need})
}

// ResolveNeed marks a need addressed
func ResolveNeed(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid need id"})
		return
	}

	need, err := services.ResolveNeed(config.DB, id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"need": need})
}

// DeleteNeed removes a need with no matching service requests
func DeleteNeed(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid need id"})
		return
	}

	if err := services.DeleteNeed(config.DB, id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Need deleted"})
}

// MatchNGOsForNeedType lists NGOs whose focus or support type covers the
// given need type
func MatchNGOsForNeedType(c *gin.Context) {
	needType := c.Query("need_type")
	if needType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "need_type parameter is required"})
		return
	}

	ngos, err := services.FindMatchingNGOs(config.DB, needType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not match NGOs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ngos})
}
