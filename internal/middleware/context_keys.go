package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	// check in the request context as well
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
		return userID, true
	}
	return "", false
}

// GetNumericUserID returns the authenticated user ID when it is numeric.
// Audit rows reference users by integer id; other subjects are not recorded.
func GetNumericUserID(c *gin.Context) *int64 {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return nil
	}
	id, err := cast.ToInt64E(userID)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
