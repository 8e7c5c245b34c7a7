package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/handlers"
	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// SetupInspectionRoutes sets up the inspection routes, including the
// per-collection legacy status update endpoints under /auth.
func SetupInspectionRoutes(api, auth *gin.RouterGroup, jwtSecret string, inspectionHandler *handlers.InspectionHandler) {
	inspections := api.Group("/inspections")
	inspections.Use(middleware.AuthRequired(jwtSecret))
	{
		inspections.POST("/", middleware.RoleRequired(models.RoleInspector), inspectionHandler.Submit)
		inspections.GET("/", inspectionHandler.List)
		inspections.GET("/:id", inspectionHandler.Get)
	}

	organizationCar := auth.Group("/organization-car")
	organizationCar.Use(middleware.AuthRequired(jwtSecret))
	{
		organizationCar.PUT("/update-inspection-status",
			middleware.RoleRequired(models.RoleInspector),
			inspectionHandler.UpdateCarStatus(models.CarSourceService))
	}

	rentCar := auth.Group("/rent-car")
	rentCar.Use(middleware.AuthRequired(jwtSecret))
	{
		rentCar.PUT("/update-inspection-status",
			middleware.RoleRequired(models.RoleInspector),
			inspectionHandler.UpdateCarStatus(models.CarSourceRent))
	}
}
