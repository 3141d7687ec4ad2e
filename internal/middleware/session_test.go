package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgechef/backend/internal/service"
)

type fakeResolver struct {
	sessions map[string]uuid.UUID
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if id, ok := f.sessions[token]; ok {
		return id, nil
	}
	return uuid.Nil, service.ErrNotAuthenticated
}

func newSessionRouter(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(resolver, "fc_session"))

	r.GET("/whoami", func(c *gin.Context) {
		if id, ok := UserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "token": SessionToken(c)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil, "token": SessionToken(c)})
	})

	protected := r.Group("", RequireUser())
	protected.GET("/private", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func doGet(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "fc_session", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware(t *testing.T) {
	userID := uuid.New()
	resolver := &fakeResolver{sessions: map[string]uuid.UUID{"good-token": userID}}
	r := newSessionRouter(resolver)

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		w := doGet(r, "/whoami", "good-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "good-token")
	})

	t.Run("no cookie is anonymous", func(t *testing.T) {
		w := doGet(r, "/whoami", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":null`)
	})

	t.Run("stale cookie is anonymous but keeps the token", func(t *testing.T) {
		w := doGet(r, "/whoami", "expired-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":null`)
		assert.Contains(t, w.Body.String(), "expired-token")
	})

	t.Run("RequireUser blocks anonymous requests", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/private", "").Code)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/private", "expired-token").Code)
		assert.Equal(t, http.StatusOK, doGet(r, "/private", "good-token").Code)
	})
}
