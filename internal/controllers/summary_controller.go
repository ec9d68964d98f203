package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
)

// GetSummary returns the dashboard counters: registered entities, open
// workload and recent delivery activity.
func GetSummary(c *gin.Context) {
	type counted struct {
		model interface{}
		where []interface{}
		dest  *int64
	}

	var (
		ngos             int64
		events           int64
		victims          int64
		pendingRequests  int64
		activeRequests   int64
		unresolvedNeeds  int64
		activeServices   int64
		recentDeliveries int64
	)
	weekAgo := time.Now().AddDate(0, 0, -7)

	counts := []counted{
		{&models.NGO{}, []interface{}{"is_active = ?", true}, &ngos},
		{&models.Event{}, nil, &events},
		{&models.Victim{}, nil, &victims},
		{&models.ServiceRequest{}, []interface{}{"status = ?", "pending"}, &pendingRequests},
		{&models.ServiceRequest{}, []interface{}{"status IN ?", []string{"approved", "in_progress"}}, &activeRequests},
		{&models.VictimNeed{}, []interface{}{"status <> ?", "addressed"}, &unresolvedNeeds},
		{&models.NGOServiceProvided{}, []interface{}{"status = ?", "active"}, &activeServices},
		{&models.ServiceDeliveryLog{}, []interface{}{"delivery_date >= ?", weekAgo}, &recentDeliveries},
	}

	for _, cnt := range counts {
		q := config.DB.Model(cnt.model)
		if len(cnt.where) > 0 {
			q = q.Where(cnt.where[0], cnt.where[1:]...)
		}
		if err := q.Count(cnt.dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute summary: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"active_ngos":            ngos,
		"events":                 events,
		"victims":                victims,
		"pending_requests":       pendingRequests,
		"active_requests":        activeRequests,
		"unresolved_needs":       unresolvedNeeds,
		"active_services":        activeServices,
		"deliveries_last_7_days": recentDeliveries,
		"generated_at":           time.Now(),
	})
}
