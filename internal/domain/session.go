package domain

import (
	"context"
	"time"
)

// Session represents an active server-side session.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionRepository defines the port for session persistence operations.
//
// GetSession returns (nil, nil) for an unknown token. DeleteSession is
// idempotent.
type SessionRepository interface {
	CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) error
}
