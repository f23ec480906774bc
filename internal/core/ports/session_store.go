package ports

import (
	"context"
	"time"
)

// SessionStore maps opaque session ids (carried by the browser cookie) to
// user ids. Sessions expire server-side after their TTL.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
