package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/speedboat/dashboard/internal/core/domain"
)

// SessionStore keeps browser sessions in Redis.
// Key format: session:<sid> -> user id, expiring after the session TTL.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create opens a session for the user and returns the opaque session id.
func (s *SessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(sid), userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return sid, nil
}

// Get resolves a session id to its user id.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("session get: %w", err)
	}
	return userID, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}

func newSessionID() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
