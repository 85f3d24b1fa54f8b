package middleware

import (
	"strings" // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"gameaccount_store/internal/response"
	"gameaccount_store/internal/utils"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID" // Authenticated user's ID
	ContextRole   = "role"   // Authenticated user's role
)

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.AbortUnauthorized(c, "Missing or invalid Authorization header.")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			response.AbortUnauthorized(c, "Invalid or expired token.")
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store userID in context
		c.Set(ContextRole, claims.Role)     // Store role in context
		c.Next()                            // Proceed to the next handler
	}
}

// UserID returns the authenticated user's ID from the gin context. The second
// return is false when the request never passed the auth middleware.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
