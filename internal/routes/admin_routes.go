package routes

import (
	"relief_tracker/internal/controllers"
	"relief_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", controllers.ListUsers)
	}

	summary := r.Group("/summary")
	summary.Use(middleware.RequireAuthWithRole("coordinator", "ngo_staff"))
	{
		summary.GET("", controllers.GetSummary)
	}
}
