package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis connects to a local Redis and skips when none is running, so
// the suite stays green on machines without one.
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

func TestSessionManager(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	t.Run("create and resolve", func(t *testing.T) {
		mgr := NewSessionManager(client, time.Hour)
		userID := uuid.New()

		token, err := mgr.Create(ctx, userID)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		resolved, err := mgr.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, resolved)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		mgr := NewSessionManager(client, time.Hour)
		userID := uuid.New()

		a, err := mgr.Create(ctx, userID)
		require.NoError(t, err)
		b, err := mgr.Create(ctx, userID)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("unknown token", func(t *testing.T) {
		mgr := NewSessionManager(client, time.Hour)

		_, err := mgr.Resolve(ctx, "no-such-token")
		assert.ErrorIs(t, err, ErrNotAuthenticated)

		_, err = mgr.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		mgr := NewSessionManager(client, 50*time.Millisecond)

		token, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)

		_, err = mgr.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("destroy invalidates immediately", func(t *testing.T) {
		mgr := NewSessionManager(client, time.Hour)

		token, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		require.NoError(t, mgr.Destroy(ctx, token))

		_, err = mgr.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrNotAuthenticated)

		// Destroying again is a no-op.
		require.NoError(t, mgr.Destroy(ctx, token))
	})
}
