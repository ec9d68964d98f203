package routes

import (
	"relief_tracker/internal/controllers"
	"relief_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ReliefRoutes covers the matching and delivery workflow: allocation
// proposals, service requests, ongoing services and delivery logs.
func ReliefRoutes(r *gin.Engine) {
	allocation := r.Group("/allocation")
	allocation.Use(middleware.RequireAuthWithRole("coordinator"))
	{
		allocation.GET("", controllers.AllocateNGOs)
	}

	requests := r.Group("/requests")
	requests.Use(middleware.RequireAuthWithRole("coordinator", "ngo_staff"))
	{
		requests.POST("", controllers.CreateServiceRequest)
		requests.GET("", controllers.ListServiceRequests)
		requests.GET("/:id", controllers.GetServiceRequest)
		requests.PUT("/:id", controllers.UpdateServiceRequest)
		requests.DELETE("/:id", controllers.DeleteServiceRequest)
	}

	services := r.Group("/services")
	services.Use(middleware.RequireAuthWithRole("coordinator", "ngo_staff"))
	{
		services.POST("", controllers.CreateService)
		services.GET("", controllers.ListServices)
		services.GET("/:id", controllers.GetService)
		services.PUT("/:id", controllers.UpdateService)
		services.DELETE("/:id", controllers.DeleteService)
	}

	deliveries := r.Group("/deliveries")
	deliveries.Use(middleware.RequireAuthWithRole("ngo_staff"))
	{
		deliveries.POST("", controllers.LogDelivery)
		deliveries.GET("", controllers.ListDeliveries)
	}

	// The live feed authenticates via a token query parameter because
	// browsers cannot set headers on WebSocket upgrades.
	r.GET("/ws/deliveries", controllers.HandleDeliveryFeed)
}
