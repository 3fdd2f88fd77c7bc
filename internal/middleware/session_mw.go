package middleware

import (
	"net/http"

	"greenfields/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the name of the browser cookie holding the opaque token
	SessionCookie = "gf_session"

	AuthUserKey = "authUser"
	AuthNameKey = "authName"
	AuthRoleKey = "authRole"
)

// SessionMiddleware resolves the caller's session cookie and, when a live
// session exists, puts its identity into the gin context. It never aborts:
// public routes run through it too, and the gates below decide what a
// missing session means.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if sess, ok := store.Get(token); ok {
				c.Set(AuthUserKey, sess.UserID)
				c.Set(AuthNameKey, sess.Username)
				c.Set(AuthRoleKey, sess.Role)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when no session resolved for the request
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(AuthUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: Please log in"})
			return
		}
		c.Next()
	}
}
