package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
		DB:   15,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s:%s: %v", host, port, err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestRateLimiter_IsAllowed(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    10 * time.Minute,
		Limit:     3,
		KeyPrefix: "test:rate",
	})

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := limiter.IsAllowed(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3-(i+1), remaining)
	}

	allowed, remaining, reset, err := limiter.IsAllowed(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(time.Now()))

	// A different client has its own budget.
	allowed, _, _, err = limiter.IsAllowed(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_Middleware(t *testing.T) {
	client := setupTestRedis(t)

	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    10 * time.Minute,
		Limit:     2,
		KeyPrefix: "test:rate:mw",
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/model", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/model", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := get()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	require.Equal(t, http.StatusOK, get().Code)

	third := get()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Contains(t, third.Body.String(), "rate limit exceeded")
}
