package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/handlers"
	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// SetupMaintenanceRoutes sets up the maintenance lifecycle routes
func SetupMaintenanceRoutes(r *gin.RouterGroup, jwtSecret string, maintenanceHandler *handlers.MaintenanceHandler) {
	requests := r.Group("/maintenance-requests")
	requests.Use(middleware.AuthRequired(jwtSecret))
	{
		requests.POST("/", middleware.RoleRequired(models.RoleDriver), maintenanceHandler.Create)
		requests.GET("/", maintenanceHandler.List)
		requests.GET("/permitted-events", maintenanceHandler.PermittedEvents)

		// Fixed role-scoped work queues
		requests.GET("/driver", maintenanceHandler.ListRoleView(models.RoleDriver))
		requests.GET("/distributor", middleware.RoleRequired(models.RoleDistributor), maintenanceHandler.ListRoleView(models.RoleDistributor))
		requests.GET("/maintenance", middleware.RoleRequired(models.RoleMaintenance), maintenanceHandler.ListRoleView(models.RoleMaintenance))
		requests.GET("/inspector", middleware.RoleRequired(models.RoleInspector), maintenanceHandler.ListRoleView(models.RoleInspector))

		requests.GET("/:id", maintenanceHandler.Get)
		requests.PATCH("/:id/status", maintenanceHandler.UpdateStatus)

		// Acceptance and return; the workflow layer enforces role and state.
		requests.POST("/:id/acceptance", maintenanceHandler.SubmitAcceptance)
		requests.POST("/:id/upload-files", maintenanceHandler.UploadFiles)
		requests.POST("/:id/complete-return", middleware.RoleRequired(models.RoleInspector), maintenanceHandler.CompleteReturn)
		requests.POST("/:id/upload-return-files", middleware.RoleRequired(models.RoleInspector), maintenanceHandler.UploadReturnFiles)
	}
}
