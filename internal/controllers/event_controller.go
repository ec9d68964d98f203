package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"relief_tracker/internal/config"
	"relief_tracker/internal/geocode"
	"relief_tracker/internal/models"
)

type eventInput struct {
	Date        *time.Time `json:"date"`
	Description string     `json:"description" binding:"required"`
	Location    string     `json:"location" binding:"required"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
}

// CreateEvent records a new tragedy. An event with the same description and
// location on the same calendar day is treated as the same event and
// returned instead of duplicated. When no coordinates are supplied the location is forward
// geocoded; geocoding failure only means the event has no coordinate.
func CreateEvent(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var existing models.Event
	err := config.DB.
		Where("LOWER(location) = ? AND LOWER(description) = ? AND date >= ? AND date < ?",
			strings.ToLower(strings.TrimSpace(input.Location)),
			strings.ToLower(strings.TrimSpace(input.Description)), dayStart, dayEnd).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"event": existing, "duplicate": true})
		return
	}

	event := models.Event{
		Date:        date,
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}

	if event.Latitude == nil || event.Longitude == nil {
		lat, lng, geoErr := geocode.Address(c.Request.Context(), event.Location)
		if geoErr != nil {
			logrus.WithError(geoErr).WithField("location", event.Location).
				Warn("Geocoding failed, storing event without coordinates")
		} else {
			event.Latitude = &lat
			event.Longitude = &lng
		}
	}

	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create event: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvent retrieves an event by ID with its victims
func GetEvent(c *gin.Context) {
	id := c.Param("id")
	var event models.Event
	if err := config.DB.Preload("Victims").First(&event, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// ListEvents lists events, newest first
func ListEvents(c *gin.Context) {
	query := config.DB.Model(&models.Event{})
	if loc := c.Query("location"); loc != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}

	var events []models.Event
	if err := query.Order("date desc").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// UpdateEvent modifies an existing event. Changing the location re-runs
// geocoding unless coordinates were provided explicitly.
func UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	var event models.Event
	if err := config.DB.First(&event, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var input struct {
		Date        *time.Time `json:"date"`
		Description *string    `json:"description"`
		Location    *string    `json:"location"`
		Latitude    *float64   `json:"latitude"`
		Longitude   *float64   `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Latitude != nil {
		event.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		event.Longitude = input.Longitude
	}
	if input.Location != nil && *input.Location != event.Location {
		event.Location = strings.TrimSpace(*input.Location)
		if input.Latitude == nil && input.Longitude == nil {
			lat, lng, geoErr := geocode.Address(c.Request.Context(), event.Location)
			if geoErr != nil {
				logrus.WithError(geoErr).WithField("location", event.Location).
					Warn("Geocoding failed, clearing stale event coordinates")
				event.Latitude = nil
				event.Longitude = nil
			} else {
				event.Latitude = &lat
				event.Longitude = &lng
			}
		}
	}

	config.DB.Save(&event)
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent removes an event. Events with registered victims are kept.
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	var victims int64
	if err := config.DB.Model(&models.Victim{}).Where("event_id = ?", id).Count(&victims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check event references"})
		return
	}
	if victims > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "event has registered victims, reassign or remove them first"})
		return
	}

	if err := config.DB.Delete(&models.Event{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
