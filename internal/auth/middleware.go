package auth

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key the middleware stores the Session under.
const SessionKey = "session"

// RequireSession guards the API with the session gate. Health endpoints,
// docs, the login route and the embedded page stay open; everything under
// /api/ needs a bearer token from a prior login.
func RequireSession(store *SessionStore) gin.HandlerFunc {
	disabled := strings.EqualFold(os.Getenv("NFL_AUTH_DISABLED"), "true") || os.Getenv("NFL_AUTH_DISABLED") == "1"

	return func(c *gin.Context) {
		if disabled {
			c.Next()
			return
		}
		p := c.Request.URL.Path
		if p == "/healthz" || p == "/readyz" || p == "/docs" || p == "/api/auth/login" {
			c.Next()
			return
		}
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger") {
			header := strings.TrimSpace(c.GetHeader("Authorization"))
			if !strings.HasPrefix(header, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			sess, ok := store.Get(token)
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
				return
			}
			c.Set(SessionKey, sess)
		}
		c.Next()
	}
}

// SessionFrom returns the authenticated session, if the middleware set one.
func SessionFrom(c *gin.Context) (Session, bool) {
	val, ok := c.Get(SessionKey)
	if !ok {
		return Session{}, false
	}
	sess, ok := val.(Session)
	return sess, ok
}
