package banker

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

func entry(txType entity.TransactionType, amount string, at time.Time) entity.Transaction {
	return entity.Transaction{Type: txType, Amount: decimal.RequireFromString(amount), CreatedAt: at}
}

func overview(id, number string, balance string, active bool, count int64) entity.AccountOverview {
	return entity.AccountOverview{
		Account: entity.Account{
			ID:            id,
			AccountNumber: number,
			Balance:       decimal.RequireFromString(balance),
			IsActive:      active,
		},
		Owner:            entity.OwnerSummary{UserID: "owner-" + id},
		TransactionCount: count,
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]entity.AccountOverview{
		overview("a", "1", "10.50", true, 1),
		overview("b", "2", "4.50", false, 0),
	}, 7)

	assert.Equal(t, 2, stats.TotalAccounts)
	assert.Equal(t, 1, stats.ActiveAccounts)
	assert.Equal(t, "15.00", entity.FormatAmount(stats.TotalBalance))
	assert.Equal(t, int64(7), stats.TotalTransactions)
}

func TestTotalsByType(t *testing.T) {
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	totals := TotalsByType([]entity.Transaction{
		entry(entity.TransactionTypeWithdrawal, "5.00", now),
		entry(entity.TransactionTypeDeposit, "10.00", now),
		entry(entity.TransactionTypeDeposit, "2.25", now),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, entity.TransactionTypeDeposit, totals[0].Type)
	assert.Equal(t, "12.25", entity.FormatAmount(totals[0].Total))
	assert.Equal(t, int64(2), totals[0].Count)
	assert.Equal(t, "5.00", entity.FormatAmount(totals[1].Total))
}

func TestMonthlyTrends(t *testing.T) {
	t.Run("should bucket by month and type, oldest first", func(t *testing.T) {
		trends := MonthlyTrends([]entity.Transaction{
			entry(entity.TransactionTypeDeposit, "1.00", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
			entry(entity.TransactionTypeDeposit, "2.00", time.Date(2025, 4, 30, 23, 0, 0, 0, time.UTC)),
			entry(entity.TransactionTypeWithdrawal, "3.00", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)),
			entry(entity.TransactionTypeDeposit, "4.00", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)),
		})

		require.Len(t, trends, 3)
		assert.Equal(t, "2025-04", trends[0].Month)
		assert.Equal(t, entity.TransactionTypeDeposit, trends[0].Type)
		assert.Equal(t, "6.00", entity.FormatAmount(trends[0].Total))
		assert.Equal(t, entity.TransactionTypeWithdrawal, trends[1].Type)
		assert.Equal(t, "2025-05", trends[2].Month)
	})

	t.Run("should return an empty slice for no entries", func(t *testing.T) {
		assert.Empty(t, MonthlyTrends(nil))
	})
}

func TestLeaderboards(t *testing.T) {
	overviews := []entity.AccountOverview{
		overview("a", "1000000001", "0", true, 2),
		overview("b", "1000000002", "0", true, 9),
		overview("c", "1000000003", "0", true, 2),
		overview("d", "1000000004", "0", true, 0),
	}

	t.Run("should rank depositors by total and skip unknown accounts", func(t *testing.T) {
		ranks := TopDepositors(overviews, []entity.AccountDepositTotal{
			{AccountID: "a", Total: decimal.RequireFromString("50"), Count: 1},
			{AccountID: "b", Total: decimal.RequireFromString("75"), Count: 3},
			{AccountID: "gone", Total: decimal.RequireFromString("999"), Count: 1},
		}, 5)

		require.Len(t, ranks, 2)
		assert.Equal(t, "b", ranks[0].AccountID)
		assert.Equal(t, int64(3), ranks[0].DepositCount)
		assert.Equal(t, "owner-b", ranks[0].Owner.UserID)
	})

	t.Run("should rank activity with account number as tie-break", func(t *testing.T) {
		ranks := MostActive(overviews, 2)

		require.Len(t, ranks, 2)
		assert.Equal(t, "b", ranks[0].AccountID)
		assert.Equal(t, "a", ranks[1].AccountID)
	})

	t.Run("should leave out accounts without entries", func(t *testing.T) {
		assert.Len(t, MostActive(overviews, 10), 3)
	})
}
