package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRequest is the body of deposit and withdraw. Amount accepts a JSON number or string.
type LedgerRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// AccountResponse renders money with exactly two decimals
type AccountResponse struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	AccountType   string    `json:"accountType"`
	Balance       string    `json:"balance"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

type TransactionResponse struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"accountId"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balanceAfter"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ActivityResponse is a transaction with the account and owner it belongs to
type ActivityResponse struct {
	TransactionResponse
	AccountNumber string         `json:"accountNumber"`
	AccountType   string         `json:"accountType"`
	Owner         *OwnerResponse `json:"owner,omitempty"`
}

type LedgerResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  string              `json:"newBalance"`
}

type HistoryResponse struct {
	Transactions []ActivityResponse `json:"transactions"`
	Accounts     []AccountResponse  `json:"accounts"`
}
