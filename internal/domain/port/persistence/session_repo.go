package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// SessionRepository is the opaque access token store
type SessionRepository interface {
	// Create persists a session
	//
	// Possible errors:
	// - ErrDuplicateKey: If the token collides with an existing session
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken looks up a session and joins its owning user
	//
	// Possible errors:
	// - ErrSessionNotFound: If no session has the token
	// - ErrDatabaseConnection: If database connection fails
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// Delete removes a session. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser removes every session of a user and returns how many were removed
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)

	// DeleteExpired removes sessions whose expiration is before now and returns how many were removed
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
