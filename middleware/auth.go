package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserKey is the cookie session key holding the logged in username
	SessionUserKey = "Username"
	// ContextUserKey is where AuthRequired leaves the username for handlers
	ContextUserKey = "username"
)

// AuthRequired accepts either a "Bearer <jwt>" Authorization header or a
// cookie session set at login.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
				return
			}
			username, err := jwtManager.Verify(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Set(ContextUserKey, username)
			c.Next()
			return
		}

		session := sessions.Default(c)
		username, ok := session.Get(SessionUserKey).(string)
		if !ok || username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ContextUserKey, username)
		c.Next()
	}
}

// CurrentUser returns the username set by AuthRequired
func CurrentUser(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
