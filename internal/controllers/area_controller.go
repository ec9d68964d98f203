package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
	"relief_tracker/internal/services"
)

// CreateServiceArea registers a coverage circle for an NGO
func CreateServiceArea(c *gin.Context) {
	var input models.NGOServiceArea
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.CreateServiceArea(config.DB, &input); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service_area": input})
}

// GetServiceArea retrieves one coverage area
func GetServiceArea(c *gin.Context) {
	id := c.Param("id")
	var area models.NGOServiceArea
	if err := config.DB.Preload("NGO").First(&area, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service area not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service_area": area})
}

// ListServiceAreas lists coverage areas matching the query filters
func ListServiceAreas(c *gin.Context) {
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

	areas, err := services.ListServiceAreas(config.DB, services.AreaFilter{
		NGOID:        ngoID,
		IsActive:     active,
		LocationName: c.Query("location_name"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch service areas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": areas})
}

// ExportServiceAreas renders all active coverage areas as a GeoJSON
// FeatureCollection of center points, radius in properties, for map
// overlays.
func ExportServiceAreas(c *gin.Context) {
	ngoID, ok := queryUintPtr(c, "ngo_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ngo_id parameter"})
		return
	}

	active := true
	areas, err := services.ListServiceAreas(config.DB, services.AreaFilter{NGOID: ngoID, IsActive: &active})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch service areas"})
		return
	}

	fc := gjson.FeatureCollection{Features: make([]*gjson.Feature, 0, len(areas))}
	for _, area := range areas {
		point := geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{area.Longitude, area.Latitude})
		fc.Features = append(fc.Features, &gjson.Feature{
			ID:       strconv.FormatUint(uint64(area.ID), 10),
			Geometry: point,
			Properties: map[string]interface{}{
				"ngo_id":        area.NGOID,
				"ngo_name":      area.NGO.Name,
				"location_name": area.LocationName,
				"radius_km":     area.RadiusKm,
			},
		})
	}

	c.JSON(http.StatusOK, fc)
}

// UpdateServiceArea modifies a coverage area
func UpdateServiceArea(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service area id"})
		return
	}

	var input services.AreaUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := services.UpdateServiceArea(config.DB, id, input)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service_area": area})
}

// DeleteServiceArea removes a coverage area
func DeleteServiceArea(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service area id"})
		return
	}

	if err := services.DeleteServiceArea(config.DB, id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service area deleted"})
}
