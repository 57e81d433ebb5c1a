package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// AccountType enumerates the kinds of customer account
type AccountType string

// Account types
const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeBusiness AccountType = "BUSINESS"
)

// AccountNumberLength is the number of digits in an account number
const AccountNumberLength = 10

// IsValid reports whether t is a known account type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness:
		return true
	default:
		return false
	}
}

// Account holds a customer's balance. The balance changes only through Deposit and Withdraw.
type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAccount opens an empty, active account
func NewAccount(userID, accountNumber string, accountType AccountType, timeProvider coreport.TimeProvider) (*Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", errs.ErrInvalidRequest, accountType)
	}
	if len(accountNumber) != AccountNumberLength {
		return nil, fmt.Errorf("%w: account number must have %d digits", errs.ErrInvalidRequest, AccountNumberLength)
	}

	now := timeProvider.Now()
	return &Account{
		ID:            uuid.NewString(),
		UserID:        userID,
		AccountNumber: accountNumber,
		AccountType:   accountType,
		Balance:       decimal.Zero,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// OwnedBy reports whether the account belongs to userID
func (a *Account) OwnedBy(userID string) bool {
	return a.UserID == userID
}

// Deposit adds amount to the balance and returns the new balance
func (a *Account) Deposit(amount decimal.Decimal, timeProvider coreport.TimeProvider) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return a.Balance, err
	}

	newBalance := a.Balance.Add(amount)
	if newBalance.GreaterThan(MaxBalance) {
		return a.Balance, errs.ErrAmountOverflow
	}

	a.Balance = newBalance
	a.UpdatedAt = timeProvider.Now()
	return a.Balance, nil
}

// Withdraw subtracts amount from the balance. The balance is left untouched on error.
func (a *Account) Withdraw(amount decimal.Decimal, timeProvider coreport.TimeProvider) (decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return a.Balance, err
	}

	if a.Balance.LessThan(amount) {
		return a.Balance, errs.NewInsufficientBalanceError(a.ID, FormatAmount(amount), FormatAmount(a.Balance))
	}

	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = timeProvider.Now()
	return a.Balance, nil
}
