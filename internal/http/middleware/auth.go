package middleware

import (
	"errors"
	"net/http"
	"strings"

	"botrental/internal/domain"
	"botrental/internal/service"

	"github.com/gin-gonic/gin"
)

// userKey is the gin context key the authenticated user is stored under.
const userKey = "current_user"

// JWT authenticates the request from its Bearer access token and stores the
// resolved user in the context. Deleted accounts are rejected as if the
// credential were invalid; blocked accounts are authenticated but forbidden.
func JWT(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := auth.GetCurrentUser(c.Request.Context(), token)
		if err != nil {
			AuthFailures.WithLabelValues(reasonFor(err)).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if user.IsDeleted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if user.IsBlocked() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is blocked"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole gates a route group on the caller's role. Runs after JWT.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	}
}

// CurrentUser returns the user stored by the JWT middleware.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func reasonFor(err error) string {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		return string(domErr.Kind)
	}
	return "internal"
}
