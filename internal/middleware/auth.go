package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library

	"walletapi/internal/domain" // Domain models
	"walletapi/internal/token"  // Token service
)

// AuthMiddleware validates bearer access tokens and resolves the subject to an
// active user. A valid token for a missing or disabled account is rejected the
// same way as an invalid token.
func AuthMiddleware(db *gorm.DB, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := tokens.Verify(tokenStr, token.KindAccess)
		if err != nil {
			// Invalid, expired or wrong-kind token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		var user domain.User // Resolve the subject against the identity store
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			// Token was valid but the account is gone or disabled
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set("userID", user.ID)   // Store userID in context
		c.Set("currentUser", user) // Store the resolved user for handlers that need it
		c.Next()                   // Proceed to the next handler
	}
}

// CurrentUser returns the authenticated user placed in the context by AuthMiddleware
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get("currentUser")
	if !exists {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
