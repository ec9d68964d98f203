package routes

import (
	"relief_tracker/internal/controllers"
	"relief_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegistryRoutes covers the coordinator-side registry: events, victims and
// their identified needs.
func RegistryRoutes(r *gin.Engine) {
	events := r.Group("/events")
	events.Use(middleware.RequireAuthWithRole("coordinator"))
	{
		events.POST("", controllers.CreateEvent)
		events.GET("", controllers.ListEvents)
		events.GET("/:id", controllers.GetEvent)
		events.PUT("/:id", controllers.UpdateEvent)
		events.DELETE("/:id", controllers.DeleteEvent)
	}

	victims := r.Group("/victims")
	victims.Use(middleware.RequireAuthWithRole("coordinator"))
	{
		victims.POST("", controllers.CreateVictim)
		victims.GET("", controllers.ListVictims)
		victims.GET("/:id", controllers.GetVictim)
		victims.PUT("/:id", controllers.UpdateVictim)
		victims.DELETE("/:id", controllers.DeleteVictim)
	}

	needs := r.Group("/needs")
	needs.Use(middleware.RequireAuthWithRole("coordinator", "ngo_staff"))
	{
		needs.POST("", controllers.IdentifyNeed)
		needs.GET("", controllers.ListNeeds)
		needs.GET("/match", controllers.MatchNGOsForNeedType)
		needs.GET("/:id", controllers.GetNeed)
		needs.PUT("/:id", controllers.UpdateNeed)
		needs.POST("/:id/resolve", controllers.ResolveNeed)
		needs.DELETE("/:id", controllers.DeleteNeed)
	}
}
