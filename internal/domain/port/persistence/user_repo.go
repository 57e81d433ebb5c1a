package persistence

import (
	"context"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// UserRepository defines methods to interact with user identities
type UserRepository interface {
	// Create persists a new user
	//
	// Possible errors:
	// - ErrDuplicateKey: If the email or username is already taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail retrieves a user by normalized email
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given email
	// - ErrDatabaseConnection: If database connection fails
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether an email is registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether a username is registered
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// SetActive toggles a user's active flag
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given ID
	// - ErrDatabaseConnection: If database connection fails
	SetActive(ctx context.Context, id string, active bool) error
}
