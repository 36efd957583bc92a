package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/utils"
)

// Single policy evaluation point: every role/ownership decision runs through
// RequireRoles at the route level and CanManage at the object level, instead
// of per-endpoint conditionals.

// RequireRoles aborts with 403 unless the authenticated role is listed.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		role := roleInterface.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
		c.Abort()
	}
}

// CanManage reports whether an actor may mutate a resource owned by ownerID.
// Admins may manage anything; everyone else only their own resources.
func CanManage(role string, ownerID, userID uint) bool {
	if role == models.RoleAdmin {
		return true
	}
	return ownerID == userID
}

// UserID pulls the authenticated user id off the context.
func UserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// Role pulls the authenticated role off the context.
func Role(c *gin.Context) string {
	if v, exists := c.Get("role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
