package routes

import (
	"relief_tracker/internal/controllers"
	"relief_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NGORoutes covers organizations and everything that hangs off them:
// coverage areas, stock and staff.
func NGORoutes(r *gin.Engine) {
	ngos := r.Group("/ngos")
	ngos.Use(middleware.RequireAuthWithRole("coordinator", "ngo_staff"))
	{
		ngos.POST("", controllers.CreateNGO)
		ngos.GET("", controllers.ListNGOs)
		ngos.GET("/:id", controllers.GetNGO)
		ngos.PUT("/:id", controllers.UpdateNGO)
		ngos.DELETE("/:id", controllers.DeleteNGO)
	}

	areas := r.Group("/service-areas")
	areas.Use(middleware.RequireAuthWithRole("coordinator", "ngo_staff"))
	{
		areas.POST("", controllers.CreateServiceArea)
		areas.GET("", controllers.ListServiceAreas)
		areas.GET("/export", controllers.ExportServiceAreas)
		areas.GET("/:id", controllers.GetServiceArea)
		areas.PUT("/:id", controllers.UpdateServiceArea)
		areas.DELETE("/:id", controllers.DeleteServiceArea)
	}

	inventory := r.Group("/inventory")
	inventory.Use(middleware.RequireAuthWithRole("ngo_staff"))
	{
		inventory.POST("", controllers.CreateInventoryItem)
		inventory.GET("", controllers.ListInventory)
		inventory.GET("/available", controllers.ListAvailableInventory)
		inventory.GET("/:id", controllers.GetInventoryItem)
		inventory.PUT("/:id", controllers.UpdateInventoryItem)
		inventory.POST("/:id/consume", controllers.ConsumeInventory)
		inventory.DELETE("/:id", controllers.DeleteInventoryItem)
	}

	staff := r.Group("/staff")
	staff.Use(middleware.RequireAuthWithRole("ngo_staff"))
	{
		staff.POST("", controllers.CreateStaff)
		staff.GET("", controllers.ListStaff)
		staff.GET("/:id", controllers.GetStaff)
		staff.PUT("/:id", controllers.UpdateStaff)
		staff.DELETE("/:id", controllers.DeleteStaff)
	}
}
