package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// tenantIDKey is the key used to store the authenticated tenant's ID in the
// request context. Every authenticated request is scoped to exactly one tenant.
const tenantIDKey = contextKey("tenantID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetTenantIDFromContext retrieves the authenticated tenant ID from the Gin context.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantID, ok := c.Request.Context().Value(tenantIDKey).(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}
