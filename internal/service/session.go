package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionManager issues and resolves opaque server-side session tokens backed
// by Redis. Tokens travel only in an HttpOnly cookie, never in URLs.
type SessionManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionManager(redisClient *redis.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{redis: redisClient, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create binds a fresh unguessable token to the user and returns it.
func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	if err := m.redis.Set(ctx, sessionKey(token), userID.String(), m.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Resolve maps a token back to its user. An unknown or expired token yields
// ErrNotAuthenticated.
func (m *SessionManager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNotAuthenticated
	}

	val, err := m.redis.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotAuthenticated
		}
		return uuid.Nil, fmt.Errorf("failed to load session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrNotAuthenticated
	}

	return userID, nil
}

// Destroy invalidates the session immediately. Destroying a token that does
// not exist is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.redis.Del(ctx, sessionKey(token)).Err()
}
