package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserIDKey is where the resolved user id lives in the gin context.
	ContextUserIDKey = "user_id"
	// ContextSessionTokenKey holds the raw session token for logout.
	ContextSessionTokenKey = "session_token"
)

// SessionResolver maps an opaque session token to a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Session resolves the session cookie into a user id in the gin context.
// Requests without a valid session proceed as anonymous; handlers that need a
// user call RequireUser.
func Session(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			// Stale cookie; treat as anonymous but keep the token so
			// logout can still clear it.
			c.Set(ContextSessionTokenKey, token)
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextSessionTokenKey, token)
		c.Next()
	}
}

// RequireUser aborts with 401 when the request carries no authenticated user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// SessionToken returns the raw session token from the request cookie, if any.
func SessionToken(c *gin.Context) string {
	val, exists := c.Get(ContextSessionTokenKey)
	if !exists {
		return ""
	}
	token, _ := val.(string)
	return token
}
