package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// TransactionRepository defines methods to interact with ledger entries.
// Entries are append-only: there is no update or delete.
type TransactionRepository interface {
	// Create appends a ledger entry
	//
	// Possible errors:
	// - ErrConstraintViolation: If the referenced account does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByAccount returns an account's entries, newest first
	ListByAccount(ctx context.Context, accountID string) ([]entity.Transaction, error)

	// ListByUser returns entries across all of a user's accounts, newest first
	ListByUser(ctx context.Context, userID string) ([]entity.TransactionActivity, error)

	// ListRecent returns the newest entries across all accounts
	ListRecent(ctx context.Context, limit int) ([]entity.TransactionActivity, error)

	// ListSince returns every entry created at or after since, oldest first
	ListSince(ctx context.Context, since time.Time) ([]entity.Transaction, error)

	// Count returns the total number of entries
	Count(ctx context.Context) (int64, error)

	// DepositTotals sums deposits per account
	DepositTotals(ctx context.Context) ([]entity.AccountDepositTotal, error)
}
