package dto

import (
	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func FromAccount(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   string(a.AccountType),
		Balance:       entity.FormatAmount(a.Balance),
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}

func FromAccounts(accounts []entity.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, FromAccount(&accounts[i]))
	}
	return out
}

func FromTransaction(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Type:         string(t.Type),
		Amount:       entity.FormatAmount(t.Amount),
		BalanceAfter: entity.FormatAmount(t.BalanceAfter),
		Description:  t.Description,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
	}
}

func FromTransactions(transactions []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, FromTransaction(&transactions[i]))
	}
	return out
}

func FromOwner(o entity.OwnerSummary) OwnerResponse {
	return OwnerResponse{
		ID:        o.UserID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Email:     o.Email,
		Role:      string(o.Role),
		IsActive:  o.IsActive,
		JoinedAt:  o.JoinedAt,
	}
}

// FromActivities maps joined transactions. withOwner is false for a customer's own history.
func FromActivities(activities []entity.TransactionActivity, withOwner bool) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		resp := ActivityResponse{
			TransactionResponse: FromTransaction(&a.Transaction),
			AccountNumber:       a.AccountNumber,
			AccountType:         string(a.AccountType),
		}
		if withOwner {
			owner := FromOwner(a.Owner)
			resp.Owner = &owner
		}
		out = append(out, resp)
	}
	return out
}

func FromOverviews(overviews []entity.AccountOverview) []AccountOverviewResponse {
	out := make([]AccountOverviewResponse, 0, len(overviews))
	for i := range overviews {
		o := &overviews[i]
		resp := AccountOverviewResponse{
			AccountResponse:  FromAccount(&o.Account),
			Owner:            FromOwner(o.Owner),
			TransactionCount: o.TransactionCount,
		}
		if o.LastTransaction != nil {
			last := FromTransaction(o.LastTransaction)
			resp.LastTransaction = &last
		}
		out = append(out, resp)
	}
	return out
}

func FromStatistics(s usecase.AccountStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalAccounts:     s.TotalAccounts,
		ActiveAccounts:    s.ActiveAccounts,
		TotalBalance:      entity.FormatAmount(s.TotalBalance),
		TotalTransactions: s.TotalTransactions,
	}
}

func FromAnalytics(a usecase.Analytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		MonthlyTotals: make([]TypeTotalResponse, 0, len(a.MonthlyTotals)),
		Trends:        make(map[string][]TypeTotalResponse),
	}
	for _, t := range a.MonthlyTotals {
		resp.MonthlyTotals = append(resp.MonthlyTotals, TypeTotalResponse{
			Type:  string(t.Type),
			Total: entity.FormatAmount(t.Total),
			Count: t.Count,
		})
	}
	for _, p := range a.Trends {
		resp.Trends[p.Month] = append(resp.Trends[p.Month], TypeTotalResponse{
			Type:  string(p.Type),
			Total: entity.FormatAmount(p.Total),
			Count: p.Count,
		})
	}
	return resp
}

func FromRanks(ranks []usecase.CustomerRank) []CustomerRankResponse {
	out := make([]CustomerRankResponse, 0, len(ranks))
	for _, r := range ranks {
		resp := CustomerRankResponse{
			Owner:            FromOwner(r.Owner),
			AccountID:        r.AccountID,
			AccountNumber:    r.AccountNumber,
			DepositCount:     r.DepositCount,
			TransactionCount: r.TransactionCount,
		}
		if r.DepositCount > 0 {
			resp.TotalDeposits = entity.FormatAmount(r.TotalDeposits)
		}
		out = append(out, resp)
	}
	return out
}

func FromDashboard(d *usecase.Dashboard) DashboardResponse {
	return DashboardResponse{
		Accounts:           FromOverviews(d.Accounts),
		RecentTransactions: FromActivities(d.RecentTransactions, true),
		Statistics:         FromStatistics(d.Statistics),
		Analytics:          FromAnalytics(d.Analytics),
		CustomerInsights: CustomerInsightsResponse{
			TopDepositors:       FromRanks(d.CustomerInsights.TopDepositors),
			MostActiveCustomers: FromRanks(d.CustomerInsights.MostActiveCustomers),
		},
	}
}
