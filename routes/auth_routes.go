package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/handlers"
	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
)

// SetupAuthRoutes sets up registration, login and admin account routes
func SetupAuthRoutes(r *gin.RouterGroup, jwtSecret string, authHandler *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		users.GET("", authHandler.ListUsers)
		users.PUT("/:id/role", authHandler.UpdateUserRole)
		users.DELETE("/:id", authHandler.DeleteUser)
	}
}
