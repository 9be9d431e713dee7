package middleware

import (
	"net/http"

	"books_api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// BasicAuthMiddleware verifies HTTP Basic credentials against the stored
// username/hash pair on every request. Requests without credentials proceed
// anonymously; the authorization policy decides whether that is acceptable.
func BasicAuthMiddleware(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Next()
			return
		}

		user, err := users.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			c.Header("WWW-Authenticate", `Basic realm="books"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.Set(AuthUserKey, user.Username)
		c.Set(AuthRoleKey, user.Authority)

		c.Next()
	}
}
