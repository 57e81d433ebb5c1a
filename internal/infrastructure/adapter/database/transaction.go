package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/repository"
)

type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	retry        RetryConfig
	classifier   *repository.ErrorClassifier
}

func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, retry RetryConfig) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		retry:        retry,
		classifier:   repository.NewErrorClassifier(),
	}
}

// isolate sets READ COMMITTED on postgres; row locks provide per-account serialization
func (u *UnitOfWork) isolate(tx *gorm.DB) error {
	if tx.Dialector.Name() != DriverPostgres {
		return nil
	}
	return tx.Exec("SET TRANSACTION ISOLATION LEVEL READ COMMITTED").Error
}

// Begin starts a transaction and stores it in the returned context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := u.isolate(tx); err != nil {
		tx.Rollback()
		return ctx, fmt.Errorf("failed to set transaction isolation level: %w", err)
	}
	return context.WithValue(ctx, txKey, tx), nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return errors.New("no transaction found in context")
	}
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback is safe to call after a commit
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return errors.New("no transaction found in context")
	}
	err := tx.Rollback().Error
	if err == nil || errors.Is(err, sql.ErrTxDone) || errors.Is(err, gorm.ErrInvalidTransaction) {
		return nil
	}
	u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
	return fmt.Errorf("failed to rollback transaction: %w", err)
}

// Execute runs fn inside one transaction, retrying the whole closure on transient failures.
// Called with a context that already carries a transaction, fn joins it.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return RetryOnTransientError(ctx, u.retry, func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := u.isolate(tx); err != nil {
				return err
			}
			return fn(context.WithValue(ctx, txKey, tx))
		})
	}, u.isRetryable, u.logger)
}

func (u *UnitOfWork) isRetryable(err error) bool {
	return errs.IsTransientError(err) || u.classifier.IsTransientError(err)
}

func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) GetSessionRepository(ctx context.Context) persistence.SessionRepository {
	return repository.NewSessionRepository(u.getDbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
