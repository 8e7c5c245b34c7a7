package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

const actorContextKey = "actor"

// AuthRequired validates the bearer token and stores the resolved Actor on
// the context. Downstream code never touches the token itself.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", utils.ErrInvalidToken)
			c.Abort()
			return
		}

		role := models.Role(claims.Role)
		if !role.Valid() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid role in token")
			c.Abort()
			return
		}

		c.Set(actorContextKey, models.Actor{
			UserID: claims.UserID,
			Name:   claims.FullName,
			Role:   role,
		})
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// ActorFromContext returns the authenticated Actor set by AuthRequired.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := value.(models.Actor)
	return actor, ok
}

// RoleRequired ensures the authenticated actor holds one of the given roles.
// Admins pass every role gate.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if actor.Role != models.RoleAdmin {
			allowed := false
			for _, role := range roles {
				if actor.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				utils.ForbiddenResponse(c)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// AdminRequired ensures the authenticated actor is an admin.
func AdminRequired() gin.HandlerFunc {
	return RoleRequired()
}
