package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/auth"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

const userContextKey = "currentUser"

// ExtractToken pulls the access token from the cookie set at login, falling
// back to the Authorization header for non-browser clients.
func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie("accessToken"); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// ProtectRoute validates the access token and loads the acting user onto
// the request context.
func ProtectRoute(tokens *auth.TokenService, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No access token provided"})
			return
		}

		userID, err := tokens.ValidateAccessToken(token)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Access token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid access token"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: User not found"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AdminRoute allows only users with the admin role. It must run after
// ProtectRoute.
func AdminRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Admins only"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by ProtectRoute, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
