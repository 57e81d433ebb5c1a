package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// TransactionType distinguishes credits from debits
type TransactionType string

// Transaction types
const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// DefaultDescription is used when the caller supplies none
func (t TransactionType) DefaultDescription() string {
	switch t {
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdrawal:
		return "Withdrawal"
	default:
		return string(t)
	}
}

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an append-only ledger entry.
// BalanceAfter is the account balance immediately after this entry was applied.
type Transaction struct {
	ID           string
	AccountID    string
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Description  string
	Status       TransactionStatus
	CreatedAt    time.Time
}

// NewLedgerEntry records a completed ledger operation against an account
func NewLedgerEntry(
	accountID string,
	txType TransactionType,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
	timeProvider coreport.TimeProvider,
) *Transaction {
	description = strings.TrimSpace(description)
	if description == "" {
		description = txType.DefaultDescription()
	}

	return &Transaction{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
		Status:       StatusCompleted,
		CreatedAt:    timeProvider.Now(),
	}
}
