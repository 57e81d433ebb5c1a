package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid email or password", ErrInvalidCredentials.Error())
	assert.Equal(t, "invalid access token", ErrInvalidAccessToken.Error())
	assert.Equal(t, "access token expired", ErrAccessTokenExpired.Error())
	assert.Equal(t, "no authentication token provided", ErrNoAuthToken.Error())
	assert.Equal(t, "account not found or access denied", ErrAccountNotFound.Error())
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, CodeInsufficientFunds},
		{"InvalidAmount", ErrInvalidAmount, CodeInvalidAmount},
		{"InvalidCredentials", ErrInvalidCredentials, CodeInvalidCredentials},
		{"InvalidAccessToken", ErrInvalidAccessToken, CodeInvalidAccessToken},
		{"CustomerOnly", ErrCustomerOnly, CodeAccessDenied},
		{"StaffOnly", ErrStaffOnly, CodeAccessDenied},
		{"AccountDeactivated", ErrAccountDeactivated, CodeAccountDeactivated},
		{"SessionNotFound", ErrSessionNotFound, CodeNotFound},
		{"UserNotFound", ErrUserNotFound, CodeUserNotFound},
		{"EmailTaken", ErrEmailTaken, CodeEmailTaken},
		{"Validation", NewValidationError("email", "email is required"), CodeInvalidRequest},
		{"ValidationWithSentinel", &ValidationError{Field: "amount", Message: "bad", Err: ErrInvalidAmount}, CodeInvalidAmount},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrAccountNotFound), CodeAccountNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", NewValidationError("email", "email and password are required"), http.StatusBadRequest},
		{"weak password", ErrWeakPassword, http.StatusBadRequest},
		{"insufficient balance", NewInsufficientBalanceError("acc-1", "50.00", "10.00"), http.StatusBadRequest},
		{"no token", ErrNoAuthToken, http.StatusUnauthorized},
		{"expired session", ErrAccessTokenExpired, http.StatusUnauthorized},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"role mismatch", ErrAccessDenied, http.StatusForbidden},
		{"customer only", ErrCustomerOnly, http.StatusForbidden},
		{"deactivated", ErrAccountDeactivated, http.StatusForbidden},
		{"deactivated session", ErrSessionDeactivated, http.StatusUnauthorized},
		{"account not owned", ErrAccountNotFound, http.StatusNotFound},
		{"email taken", ErrEmailTaken, http.StatusConflict},
		{"inactive account", ErrAccountInactive, http.StatusConflict},
		{"database", fmt.Errorf("%w: dial tcp", ErrDatabaseConnection), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HTTPStatus(tc.err))
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("acc-1", "150.00", "100.00")

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.True(t, IsInsufficientBalanceError(err))
	assert.Equal(t, "insufficient balance on account acc-1: required 150.00, available 100.00", err.Error())

	var detailed *InsufficientBalanceError
	assert.True(t, errors.As(err, &detailed))
	assert.Equal(t, CodeInsufficientFunds, detailed.LogFields()["error_code"])
}

func TestLedgerError(t *testing.T) {
	inner := NewInsufficientBalanceError("acc-1", "150.00", "100.00")
	err := NewLedgerError("withdraw", "acc-1", "user-1", "150.00", inner)

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	var ledgerErr *LedgerError
	assert.True(t, errors.As(err, &ledgerErr))
	fields := ledgerErr.LogFields()
	assert.Equal(t, "ledger_error", fields["error_type"])
	assert.Equal(t, "withdraw", fields["operation"])
	assert.Equal(t, "100.00", fields["current_balance"])
	assert.Equal(t, CodeInsufficientFunds, fields["error_code"])
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("password", "email and password are required")

	assert.Equal(t, "email and password are required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsAuthenticationError(err))
}

func TestCategoryHelpers(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrSessionNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsAuthorizationError(ErrStaffOnly))
	assert.False(t, IsAuthenticationError(ErrAccessDenied))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("%w: sessions.token", ErrDuplicateKey)))
	assert.True(t, IsTransientError(fmt.Errorf("%w: deadlock detected", ErrTransient)))
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrCustomerOnly, "only customers can make deposits")

	assert.Equal(t, "only customers can make deposits", err.Error())
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, CodeAccessDenied, ErrorCode(err))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(err))

	amountErr := WithMessage(ErrInvalidAmount, "invalid deposit amount")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(amountErr))
	assert.Equal(t, CodeInvalidAmount, ErrorCode(amountErr))
}
