package persistence

import (
	"context"
)

// UnitOfWork coordinates writes across repositories so they commit or roll back together
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Execute runs fn inside a transaction. It commits when fn returns nil and rolls back otherwise.
	// The whole closure is retried on transient errors, so fn must not have side effects outside the transaction.
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetSessionRepository returns a session repository bound to the current transaction
	GetSessionRepository(ctx context.Context) SessionRepository
}
