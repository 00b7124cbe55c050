// auth.go - Session authentication and role middleware

package middleware

import (
	"net/http"

	"go-tree-catalog/models"
	"go-tree-catalog/session"

	"github.com/gin-gonic/gin"
)

const (
	// IdentityKey is the gin context key the resolved identity is stored
	// under.
	IdentityKey = "identity"
	// TokenKey is the gin context key holding the raw session token, needed
	// by logout.
	TokenKey = "session_token"
)

// Session resolves the session cookie into an identity and stores it in the
// request context. Requests without a valid session pass through as
// anonymous; route groups that need authentication add RequireAuth on top.
func Session(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err == nil && token != "" {
			if identity, ok := sessions.Resolve(token); ok {
				c.Set(IdentityKey, identity)
				c.Set(TokenKey, token)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless the request carries a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(IdentityKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 for anonymous requests and 403 for
// authenticated non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if identity.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// Identity returns the resolved identity for the request, if any.
func Identity(c *gin.Context) (session.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return session.Identity{}, false
	}
	identity, ok := v.(session.Identity)
	return identity, ok
}

// Token returns the raw session token for the request, if any.
func Token(c *gin.Context) (string, bool) {
	v, ok := c.Get(TokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
