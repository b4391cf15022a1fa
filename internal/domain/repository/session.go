package repository

import (
	"context"
	"time"
)

// SessionRepository persists encoded web session values by session id.
type SessionRepository interface {
	// Get returns the encoded values of a live session or ErrNotFound.
	Get(ctx context.Context, id string) (string, error)
	Save(ctx context.Context, id, values string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
