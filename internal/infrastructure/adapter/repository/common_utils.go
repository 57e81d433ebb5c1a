package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// Postgres SQLSTATE codes that matter to the ledger
const (
	sqlStateUniqueViolation      = "23505"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateIntegrityClass       = "23"
	sqlStateConnectionClass      = "08"
)

// ErrorClassifier classifies driver errors. It prefers typed checks (gorm sentinels, pgconn codes)
// and falls back to message matching for drivers that expose neither.
type ErrorClassifier struct{}

func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConstraintError(err):
		return ConstraintError
	default:
		return ""
	}
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func containsAny(err error, fragments ...string) bool {
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == sqlStateUniqueViolation {
		return true
	}
	return containsAny(err, "duplicate key", "unique constraint")
}

// IsLockError covers serialization failures, deadlocks and busy sqlite databases
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	switch sqlState(err) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	}
	return containsAny(err, "deadlock", "could not serialize access", "database is locked", "database table is locked")
}

func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || strings.HasPrefix(sqlState(err), sqlStateConnectionClass) {
		return true
	}
	return containsAny(err, "connection reset", "connection refused", "broken pipe", "server closed", "dial tcp")
}

// IsTransientError reports whether retrying the whole unit of work may succeed
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errs.ErrTransient) {
		return true
	}
	return c.IsLockError(err) || c.IsConnectionError(err)
}

func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if strings.HasPrefix(sqlState(err), sqlStateIntegrityClass) {
		return true
	}
	return containsAny(err, "constraint failed", "violates")
}

// translateError converts a gorm/driver error into a domain error. notFound is returned for missing rows.
func translateError(classifier *ErrorClassifier, logger coreport.Logger, operation string, err error, notFound error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	logFields := map[string]any{"operation": operation, "error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}

	switch classifier.Classify(err) {
	case DuplicateKeyError:
		logger.Warn("Duplicate key on write", logFields)
		return fmt.Errorf("%w: %s", errs.ErrDuplicateKey, operation)
	case LockError, TransientError, ConnectionError:
		logger.Warn("Transient database error", logFields)
		return fmt.Errorf("%w: %s: %s", errs.ErrTransient, operation, err.Error())
	case ConstraintError:
		logger.Error("Constraint violation", logFields)
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, operation)
	default:
		logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}
