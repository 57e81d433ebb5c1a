package dto

import "time"

type OwnerResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type AccountOverviewResponse struct {
	AccountResponse
	Owner            OwnerResponse        `json:"owner"`
	TransactionCount int64                `json:"transactionCount"`
	LastTransaction  *TransactionResponse `json:"lastTransaction"`
}

type StatisticsResponse struct {
	TotalAccounts     int    `json:"totalAccounts"`
	ActiveAccounts    int    `json:"activeAccounts"`
	TotalBalance      string `json:"totalBalance"`
	TotalTransactions int64  `json:"totalTransactions"`
}

type AccountsResponse struct {
	Accounts   []AccountOverviewResponse `json:"accounts"`
	Statistics StatisticsResponse        `json:"statistics"`
}

type AccountTransactionsResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

type TypeTotalResponse struct {
	Type  string `json:"type"`
	Total string `json:"total"`
	Count int64  `json:"count"`
}

type AnalyticsResponse struct {
	MonthlyTotals []TypeTotalResponse `json:"monthlyTotals"`
	// Trends is keyed by YYYY-MM
	Trends map[string][]TypeTotalResponse `json:"trends"`
}

type CustomerRankResponse struct {
	Owner            OwnerResponse `json:"owner"`
	AccountID        string        `json:"accountId"`
	AccountNumber    string        `json:"accountNumber"`
	TotalDeposits    string        `json:"totalDeposits,omitempty"`
	DepositCount     int64         `json:"depositCount,omitempty"`
	TransactionCount int64         `json:"transactionCount"`
}

type CustomerInsightsResponse struct {
	TopDepositors       []CustomerRankResponse `json:"topDepositors"`
	MostActiveCustomers []CustomerRankResponse `json:"mostActiveCustomers"`
}

type DashboardResponse struct {
	Accounts           []AccountOverviewResponse `json:"accounts"`
	RecentTransactions []ActivityResponse        `json:"recentTransactions"`
	Statistics         StatisticsResponse        `json:"statistics"`
	Analytics          AnalyticsResponse         `json:"analytics"`
	CustomerInsights   CustomerInsightsResponse  `json:"customerInsights"`
}
