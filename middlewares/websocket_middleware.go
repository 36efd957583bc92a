package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/dinehub/restaurant-app/utils"
)

// WebSocketAuthMiddleware authenticates websocket upgrades. Browsers cannot
// set headers on ws connections, so the token may also arrive as a query
// parameter or the auth cookie.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = tokenFromRequest(c)
		}
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil || claims.TokenType != utils.TokenTypeAccess {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
