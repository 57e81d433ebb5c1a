package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 40xx - Validation errors
	CodeInvalidRequest    = 4000
	CodeInvalidAmount     = 4001
	CodeInsufficientFunds = 4002
	CodeAmountOverflow    = 4003
	CodeInvalidEmail      = 4004
	CodeWeakPassword      = 4005
	CodeInvalidUsername   = 4006
	CodeInvalidRole       = 4007

	// 41xx - Authentication errors
	CodeUnauthenticated    = 4100
	CodeInvalidCredentials = 4101
	CodeInvalidAccessToken = 4102
	CodeAccessTokenExpired = 4103
	CodeInvalidToken       = 4104

	// 43xx - Authorization errors
	CodeAccessDenied       = 4300
	CodeAccountDeactivated = 4301

	// 44xx - Not found
	CodeNotFound        = 4400
	CodeAccountNotFound = 4401
	CodeUserNotFound    = 4402

	// 49xx - Conflicts
	CodeEmailTaken      = 4900
	CodeUsernameTaken   = 4901
	CodeAccountInactive = 4902
	CodeConflict        = 4903

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
)

// Validation errors
var (
	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidEmail is returned when the email does not look like an address
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword is returned when a password fails the strength policy
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrInvalidUsername is returned when the username has the wrong length or charset
	ErrInvalidUsername = errors.New("username must be 3-20 characters and contain only letters, digits and underscores")

	// ErrInvalidRole is returned for a role outside CUSTOMER, BANKER and ADMIN
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidAmount is returned when an amount is not positive or has more than two decimals
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when a balance would exceed the storable maximum
	ErrAmountOverflow = errors.New("amount is too large")

	// ErrAccountIDRequired is returned when a ledger request names no account
	ErrAccountIDRequired = errors.New("account ID is required")
)

// Authentication errors
var (
	// ErrNoAuthToken is returned when neither a signed cookie nor a bearer token was supplied
	ErrNoAuthToken = errors.New("no authentication token provided")

	// ErrInvalidCredentials is the single message for unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidAccessToken is returned when a bearer token matches no session
	ErrInvalidAccessToken = errors.New("invalid access token")

	// ErrAccessTokenExpired is returned when a bearer token's session has lapsed
	ErrAccessTokenExpired = errors.New("access token expired")

	// ErrInvalidToken is returned when a signed session token fails verification
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSessionDeactivated is returned by the gate when a live session belongs to a deactivated user.
	// Unlike ErrAccountDeactivated at login it asks the client to authenticate again.
	ErrSessionDeactivated = errors.New("account is deactivated")
)

// Authorization errors
var (
	// ErrAccessDenied is returned when a principal's role is not allowed
	ErrAccessDenied = errors.New("access denied")

	// ErrCustomerOnly is returned when a non-customer attempts a ledger operation
	ErrCustomerOnly = fmt.Errorf("%w: only customers can perform ledger operations", ErrAccessDenied)

	// ErrStaffOnly is returned when a non-staff user attempts a banker login
	ErrStaffOnly = fmt.Errorf("%w: banker credentials required", ErrAccessDenied)

	// ErrAccountDeactivated is returned when the user's active flag is off
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// Domain errors
var (
	// ErrInsufficientBalance is returned when a withdrawal exceeds the account balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrAccountNotFound covers both a missing account and one owned by someone else
	ErrAccountNotFound = errors.New("account not found or access denied")

	// ErrSessionNotFound is returned when no session row matches a token
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// ErrAccountInactive is returned when a ledger operation targets a disabled account
	ErrAccountInactive = errors.New("account is inactive")

	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken is returned when registering a username that already exists
	ErrUsernameTaken = errors.New("username already taken")
)

// Infrastructure errors
var (
	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateKey is returned by repositories when a unique constraint rejects a write
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrTransient is returned for serialization failures and deadlocks that can be retried
	ErrTransient = errors.New("transient database error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &validationErr):
		return validationErr.Code()
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientFunds
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrInvalidUsername):
		return CodeInvalidUsername
	case errors.Is(err, ErrInvalidRole):
		return CodeInvalidRole
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrAccountIDRequired):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrInvalidAccessToken):
		return CodeInvalidAccessToken
	case errors.Is(err, ErrAccessTokenExpired):
		return CodeAccessTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidToken
	case errors.Is(err, ErrNoAuthToken):
		return CodeUnauthenticated
	case errors.Is(err, ErrAccountDeactivated), errors.Is(err, ErrSessionDeactivated):
		return CodeAccountDeactivated
	case errors.Is(err, ErrAccessDenied):
		return CodeAccessDenied
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrEmailTaken):
		return CodeEmailTaken
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrAccountInactive):
		return CodeAccountInactive
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrConstraintViolation):
		return CodeConflict
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps an error to the status code used at the API boundary
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidationError(err), IsInsufficientBalanceError(err):
		return http.StatusBadRequest
	case IsAuthenticationError(err):
		return http.StatusUnauthorized
	case IsAuthorizationError(err):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	case IsConflictError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError carries a client-facing message for malformed input
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidRequest}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Code returns the numeric code of the wrapped sentinel
func (e *ValidationError) Code() int {
	if e.Err == nil || errors.Is(e.Err, ErrInvalidRequest) {
		return CodeInvalidRequest
	}
	return ErrorCode(e.Err)
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"error":      e.Message,
		"error_code": e.Code(),
	}
}

// MessageError replaces the client-facing message of a wrapped sentinel
type MessageError struct {
	Message string
	Err     error
}

// WithMessage keeps err's classification but reports message to the client
func WithMessage(err error, message string) error {
	return &MessageError{Message: message, Err: err}
}

// Error implements the error interface
func (e *MessageError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *MessageError) Unwrap() error {
	return e.Err
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	AccountID   string
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: required %s, available %s",
		e.AccountID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"account_id":      e.AccountID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountID, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		AccountID:   accountID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// LedgerError represents a failed deposit or withdrawal
type LedgerError struct {
	Operation string
	AccountID string
	UserID    string
	Amount    string
	Err       error
}

// NewLedgerError creates a detailed ledger error
func NewLedgerError(operation, accountID, userID, amount string, err error) error {
	return &LedgerError{
		Operation: operation,
		AccountID: accountID,
		UserID:    userID,
		Amount:    amount,
		Err:       err,
	}
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s of %s on account %s failed: %v", e.Operation, e.Amount, e.AccountID, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "ledger_error",
		"operation":  e.Operation,
		"account_id": e.AccountID,
		"user_id":    e.UserID,
		"amount":     e.Amount,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
	var detailed interface{ LogFields() map[string]any }
	if errors.As(e.Err, &detailed) {
		for k, v := range detailed.LogFields() {
			if _, exists := fields[k]; !exists {
				fields[k] = v
			}
		}
	}
	return fields
}

// IsValidationError checks if the error is a client input error
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrAccountIDRequired)
}

// IsAuthenticationError checks if the error means the caller must log in again
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrNoAuthToken) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidAccessToken) ||
		errors.Is(err, ErrAccessTokenExpired) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSessionDeactivated)
}

// IsAuthorizationError checks if the caller is known but not permitted
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrAccountDeactivated)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsConflictError checks if the error is a uniqueness or state conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrAccountInactive)
}

// IsDuplicateKeyError checks if a repository reported a unique constraint violation
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsTransientError checks if the operation may succeed when retried
func IsTransientError(err error) bool {
	return errors.Is(err, ErrTransient)
}
