package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/handlers"
	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// SetupFuelRoutes sets up the fuel/oil/grease approval chain routes
func SetupFuelRoutes(r *gin.RouterGroup, jwtSecret string, fuelHandler *handlers.FuelHandler) {
	requests := r.Group("/fuel-requests")
	requests.Use(middleware.AuthRequired(jwtSecret))
	{
		requests.POST("/", middleware.RoleRequired(models.RoleMechanic), fuelHandler.Create)
		requests.GET("/", fuelHandler.List)

		// Stage views
		requests.GET("/pending", fuelHandler.ListByStatus(models.FuelRequestStatusPending))
		requests.GET("/checked", fuelHandler.ListByStatus(models.FuelRequestStatusChecked))
		requests.GET("/approved", fuelHandler.ListByStatus(models.FuelRequestStatusApproved))
		requests.GET("/pending-fulfillment", fuelHandler.ListPendingFulfillment)
		requests.GET("/mechanic/:name", fuelHandler.ListByMechanic)

		requests.GET("/:id", fuelHandler.Get)
		requests.PUT("/:id", middleware.RoleRequired(models.RoleMechanic), fuelHandler.Update)

		requests.PUT("/:id/head-mechanic-review", middleware.RoleRequired(models.RoleHeadMechanic), fuelHandler.HeadMechanicReview)
		requests.PUT("/:id/nezek-review", middleware.RoleRequired(models.RoleNezekOfficial), fuelHandler.NezekReview)
		requests.PUT("/:id/fulfill", middleware.RoleRequired(models.RoleMechanic), fuelHandler.Fulfill)
	}
}
