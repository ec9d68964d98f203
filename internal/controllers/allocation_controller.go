package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/services"
)

// AllocateNGOs proposes NGOs able to serve a location, nearest first. The
// location comes either from lat/lng query parameters or from a geocoded
// event via event_id. An optional need_type narrows candidates and attaches
// their matching available stock; max_distance_km caps the coverage radius.
func AllocateNGOs(c *gin.Context) {
	lat, ok := queryFloatPtr(c, "lat")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat parameter"})
		return
	}
	lng, ok := queryFloatPtr(c, "lng")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng parameter"})
		return
	}
	eventID, ok := queryUintPtr(c, "event_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id parameter"})
		return
	}
	maxDistance, ok := queryFloatPtr(c, "max_distance_km")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_distance_km parameter"})
		return
	}

	candidates, err := services.Allocate(config.DB, services.AllocationQuery{
		Latitude:      lat,
		Longitude:     lng,
		EventID:       eventID,
		NeedType:      c.Query("need_type"),
		MaxDistanceKm: maxDistance,
	})
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": candidates, "count": len(candidates)})
}
