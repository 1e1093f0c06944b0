package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/auth"
)

// ValidateToken authenticates the request from the Authorization header and
// stores the caller identity in the gin context.
func ValidateToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
		c.Abort()
		return
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	identity, err := auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", identity.UserID)
	c.Set("email", identity.Email)
	c.Set("is_admin", identity.IsAdmin)

	c.Next()
}

// RequireAdmin gates admin routes. Must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	if !c.GetBool("is_admin") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// UserID returns the authenticated user id set by ValidateToken.
func UserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}
