package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/domain"
	"gameaccount_store/internal/response"
)

// AdminOnlyMiddleware gates a route group on the Admin role. The role comes
// from the verified token claims; the claim is the trusted input here, not a
// fresh database read.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole) // Get role from context
		// Check if role exists in context
		if !exists {
			response.AbortUnauthorized(c, "Unauthorized.")
			return
		}
		// Check if user role is admin
		if role != domain.RoleAdmin {
			response.AbortForbidden(c, "Admin access required.")
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
