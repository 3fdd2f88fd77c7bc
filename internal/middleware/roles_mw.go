package middleware

import (
	"net/http"

	"greenfields/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireRole creates a middleware allowing only the given roles. A request
// with no session at all is rejected with 401, not 403: "not logged in" and
// "wrong role" are distinct outcomes even when the auth gate was skipped.
// Role comparison is case-insensitive.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Please log in"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid session role"})
			return
		}

		userRole = model.NormalizeRole(userRole)
		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if userRole == model.NormalizeRole(allowedRole) {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied: Only farmers can view orders",
				"role":    userRole,
			})
			return
		}

		c.Next()
	}
}

// SellerMiddleware gates routes to accounts that can sell produce
func SellerMiddleware() gin.HandlerFunc {
	return RequireRole(model.SellerRoles...)
}
