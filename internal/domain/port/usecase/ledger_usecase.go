package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// LedgerRequest represents a deposit or withdrawal request
type LedgerRequest struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// LedgerResult contains the appended entry and the account's new balance
type LedgerResult struct {
	Transaction *entity.Transaction
	NewBalance  decimal.Decimal
}

// CustomerLedger is a customer's transaction history with their accounts
type CustomerLedger struct {
	Transactions []entity.TransactionActivity
	Accounts     []entity.Account
}

// LedgerUseCase defines balance-mutating operations for customers
type LedgerUseCase interface {
	// Deposit credits an account owned by the principal
	Deposit(ctx context.Context, principal entity.Principal, req LedgerRequest) (*LedgerResult, error)

	// Withdraw debits an account owned by the principal
	Withdraw(ctx context.Context, principal entity.Principal, req LedgerRequest) (*LedgerResult, error)

	// History returns the principal's transactions, newest first, and accounts
	History(ctx context.Context, principal entity.Principal) (*CustomerLedger, error)
}
