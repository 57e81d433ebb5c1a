package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// AccountStatistics summarizes all accounts
type AccountStatistics struct {
	TotalAccounts     int
	ActiveAccounts    int
	TotalBalance      decimal.Decimal
	TotalTransactions int64
}

// AccountsOverview is the banker's account list
type AccountsOverview struct {
	Accounts   []entity.AccountOverview
	Statistics AccountStatistics
}

// AccountHistory is one account and its entries, newest first
type AccountHistory struct {
	Account      *entity.Account
	Transactions []entity.Transaction
}

// TypeTotal aggregates entries of one type
type TypeTotal struct {
	Type  entity.TransactionType
	Total decimal.Decimal
	Count int64
}

// TrendPoint aggregates entries of one type within a calendar month (YYYY-MM)
type TrendPoint struct {
	Month string
	Type  entity.TransactionType
	Total decimal.Decimal
	Count int64
}

// CustomerRank is one row of a customer leaderboard
type CustomerRank struct {
	Owner            entity.OwnerSummary
	AccountID        string
	AccountNumber    string
	TotalDeposits    decimal.Decimal
	DepositCount     int64
	TransactionCount int64
}

// Analytics holds time-bucketed totals
type Analytics struct {
	MonthlyTotals []TypeTotal
	Trends        []TrendPoint
}

// CustomerInsights holds customer leaderboards
type CustomerInsights struct {
	TopDepositors       []CustomerRank
	MostActiveCustomers []CustomerRank
}

// Dashboard is the banker landing view
type Dashboard struct {
	Accounts           []entity.AccountOverview
	RecentTransactions []entity.TransactionActivity
	Statistics         AccountStatistics
	Analytics          Analytics
	CustomerInsights   CustomerInsights
}

// BankerUseCase defines read-only views for staff
type BankerUseCase interface {
	// ListAccounts returns every account with owner and statistics
	ListAccounts(ctx context.Context) (*AccountsOverview, error)

	// AccountTransactions returns one account's entries
	AccountTransactions(ctx context.Context, accountID string) (*AccountHistory, error)

	// Dashboard assembles accounts, recent activity, analytics and leaderboards
	Dashboard(ctx context.Context) (*Dashboard, error)
}
