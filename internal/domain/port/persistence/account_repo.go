package persistence

import (
	"context"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// AccountRepository defines methods to interact with customer accounts
type AccountRepository interface {
	// Create persists a new account
	//
	// Possible errors:
	// - ErrDuplicateKey: If the account number is already in use
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, account *entity.Account) error

	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Account, error)

	// GetByIDForUpdate retrieves an account and locks its row until the surrounding transaction ends.
	// Must be called on a repository obtained from a UnitOfWork inside Begin/Execute.
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Account, error)

	// ListByUser returns a user's accounts, oldest first
	ListByUser(ctx context.Context, userID string) ([]entity.Account, error)

	// UpdateBalance writes a new balance for an account
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account has the given ID
	// - ErrDatabaseConnection: If database connection fails
	UpdateBalance(ctx context.Context, account *entity.Account) error

	// AccountNumberExists reports whether an account number is taken
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)

	// ListOverviews returns every account joined with its owner, transaction count
	// and most recent transaction, newest account first
	ListOverviews(ctx context.Context) ([]entity.AccountOverview, error)
}
