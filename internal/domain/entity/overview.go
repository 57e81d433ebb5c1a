package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerSummary is the slice of a user shown next to an account
type OwnerSummary struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Role      Role
	IsActive  bool
	JoinedAt  time.Time
}

// AccountOverview is an account with its owner and activity counters
type AccountOverview struct {
	Account          Account
	Owner            OwnerSummary
	TransactionCount int64
	LastTransaction  *Transaction
}

// TransactionActivity is a transaction joined with its account and owner
type TransactionActivity struct {
	Transaction   Transaction
	AccountNumber string
	AccountType   AccountType
	Owner         OwnerSummary
}

// AccountDepositTotal aggregates deposits for one account
type AccountDepositTotal struct {
	AccountID string
	Total     decimal.Decimal
	Count     int64
}
