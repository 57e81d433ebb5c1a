package banker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/usecase/banker"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/security"
)

func seededService(t *testing.T) (*banker.Service, *database.TestDBManager) {
	t.Helper()
	db := database.NewTestDBManager(t)
	_, err := db.Manager.Seed(context.Background(), security.NewBcryptHasher(4))
	require.NoError(t, err)
	return banker.NewBankerService(db.Manager.CreateUnitOfWork(), db.TimeProvider, db.Logger), db
}

func accountNumbers(ranks []entity.AccountOverview) []string {
	numbers := make([]string, 0, len(ranks))
	for _, r := range ranks {
		numbers = append(numbers, r.Account.AccountNumber)
	}
	return numbers
}

func TestService_ListAccounts(t *testing.T) {
	svc, _ := seededService(t)

	overview, err := svc.ListAccounts(context.Background())

	require.NoError(t, err)
	assert.Len(t, overview.Accounts, 6)
	assert.Contains(t, accountNumbers(overview.Accounts), "1234567890")
	assert.Equal(t, 6, overview.Statistics.TotalAccounts)
	assert.Equal(t, 6, overview.Statistics.ActiveAccounts)
	assert.Equal(t, "21770.00", entity.FormatAmount(overview.Statistics.TotalBalance))
	assert.Equal(t, int64(30), overview.Statistics.TotalTransactions)
}

func TestService_AccountTransactions(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	t.Run("should return the account with its entries", func(t *testing.T) {
		overview, err := svc.ListAccounts(ctx)
		require.NoError(t, err)
		var customerAccount string
		for _, o := range overview.Accounts {
			if o.Account.AccountNumber == "1234567890" {
				customerAccount = o.Account.ID
			}
		}
		require.NotEmpty(t, customerAccount)

		history, err := svc.AccountTransactions(ctx, customerAccount)

		require.NoError(t, err)
		assert.Equal(t, "1000.00", entity.FormatAmount(history.Account.Balance))
		require.Len(t, history.Transactions, 4)
		assert.Equal(t, "Shopping", history.Transactions[0].Description)
	})

	t.Run("should report unknown accounts as not found", func(t *testing.T) {
		_, err := svc.AccountTransactions(ctx, "00000000-0000-0000-0000-000000000000")

		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
		assert.Equal(t, 404, errs.HTTPStatus(err))
	})

	t.Run("should require an id", func(t *testing.T) {
		_, err := svc.AccountTransactions(ctx, " ")

		assert.ErrorIs(t, err, errs.ErrAccountIDRequired)
	})

}

func TestService_Dashboard(t *testing.T) {
	svc, _ := seededService(t)

	dashboard, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Len(t, dashboard.Accounts, 6)
	assert.Len(t, dashboard.RecentTransactions, banker.RecentTransactionsLimit)
	assert.Equal(t, int64(30), dashboard.Statistics.TotalTransactions)

	t.Run("should total the analytics window by type", func(t *testing.T) {
		totals := dashboard.Analytics.MonthlyTotals
		require.Len(t, totals, 2)
		assert.Equal(t, entity.TransactionTypeDeposit, totals[0].Type)
		assert.Equal(t, "30000.00", entity.FormatAmount(totals[0].Total))
		assert.Equal(t, int64(17), totals[0].Count)
		assert.Equal(t, "8230.00", entity.FormatAmount(totals[1].Total))
		assert.Equal(t, int64(13), totals[1].Count)
		assert.NotEmpty(t, dashboard.Analytics.Trends)
	})

	t.Run("should rank the top depositors", func(t *testing.T) {
		ranks := dashboard.CustomerInsights.TopDepositors
		require.Len(t, ranks, banker.LeaderboardSize)
		assert.Equal(t, "3456789012", ranks[0].AccountNumber)
		assert.Equal(t, "7800.00", entity.FormatAmount(ranks[0].TotalDeposits))
		assert.Equal(t, "Bob", ranks[0].Owner.FirstName)
		assert.Equal(t, "6789012345", ranks[1].AccountNumber)
	})

	t.Run("should rank the most active customers", func(t *testing.T) {
		ranks := dashboard.CustomerInsights.MostActiveCustomers
		require.Len(t, ranks, banker.LeaderboardSize)
		assert.Equal(t, "6789012345", ranks[0].AccountNumber)
		assert.Equal(t, int64(7), ranks[0].TransactionCount)
		assert.Equal(t, "4567890123", ranks[1].AccountNumber)
		assert.Equal(t, "1234567890", ranks[3].AccountNumber)
	})
}
