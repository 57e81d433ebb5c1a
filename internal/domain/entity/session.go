package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque access token persisted for one logged-in client.
// User is populated by lookups that join the owner.
type Session struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
	User      *User
}

// NewSession creates a session for userID valid for ttl from now
func NewSession(userID, token string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired reports whether now is past the session's expiration
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
