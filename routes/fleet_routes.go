package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/handlers"
	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
)

// SetupFleetRoutes sets up the fleet read model and seat assignment routes
func SetupFleetRoutes(api, auth *gin.RouterGroup, jwtSecret string, fleetHandler *handlers.FleetHandler) {
	// Legacy fleet listing paths under /auth, kept for the front end.
	organizationCar := auth.Group("/organization-car")
	organizationCar.Use(middleware.AuthRequired(jwtSecret))
	{
		organizationCar.GET("/service-buses", fleetHandler.ServiceBuses)
	}

	rentCar := auth.Group("/rent-car")
	rentCar.Use(middleware.AuthRequired(jwtSecret))
	{
		rentCar.GET("/bus-minibus", fleetHandler.RentBusMinibus)
	}

	rentRoutes := auth.Group("/rent-car-routes")
	rentRoutes.Use(middleware.AuthRequired(jwtSecret))
	{
		rentRoutes.GET("", fleetHandler.RentCarRoutes)
	}

	routes := api.Group("/routes")
	routes.Use(middleware.AuthRequired(jwtSecret))
	{
		routes.GET("", fleetHandler.Routes)
	}

	cars := api.Group("/cars")
	cars.Use(middleware.AuthRequired(jwtSecret))
	{
		cars.GET("/available-seats", fleetHandler.AvailableSeats)
	}

	employees := api.Group("/employees")
	employees.Use(middleware.AuthRequired(jwtSecret))
	{
		employees.GET("", fleetHandler.Employees)
		employees.POST("/assign-car", fleetHandler.AssignCar)
		employees.DELETE("/assign-car/:id", fleetHandler.UnassignCar)
	}
}
