package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/repository"
	timeprovider "github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/time"
)

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := timeprovider.NewFixedTimeProvider(start)
	tdb := database.NewTestDBManagerWithClock(t, clock)
	repo := repository.NewTransactionRepository(tdb.Manager.DB(), tdb.Logger)

	jane := tdb.CreateTestUser(t, "jane@example.com", entity.RoleCustomer)
	bob := tdb.CreateTestUser(t, "bob@example.com", entity.RoleCustomer)
	janeAcc := tdb.CreateTestAccount(t, jane.ID, "1000000001", "0.00")
	bobAcc := tdb.CreateTestAccount(t, bob.ID, "1000000002", "0.00")

	record := func(accountID string, txType entity.TransactionType, amount string) {
		t.Helper()
		clock.Advance(time.Hour)
		entry := entity.NewLedgerEntry(accountID, txType, decimal.RequireFromString(amount), decimal.RequireFromString(amount), "", clock)
		require.NoError(t, repo.Create(ctx, entry))
	}

	record(janeAcc.ID, entity.TransactionTypeDeposit, "100.00")
	record(bobAcc.ID, entity.TransactionTypeDeposit, "300.00")
	record(janeAcc.ID, entity.TransactionTypeWithdrawal, "40.00")
	record(janeAcc.ID, entity.TransactionTypeDeposit, "60.50")

	t.Run("should reject entries for unknown accounts", func(t *testing.T) {
		entry := entity.NewLedgerEntry("missing", entity.TransactionTypeDeposit, decimal.NewFromInt(1), decimal.NewFromInt(1), "", clock)
		assert.ErrorIs(t, repo.Create(ctx, entry), errs.ErrConstraintViolation)
	})

	t.Run("should list a user's activity newest first", func(t *testing.T) {
		activity, err := repo.ListByUser(ctx, jane.ID)
		require.NoError(t, err)
		require.Len(t, activity, 3)

		assert.Equal(t, "60.50", entity.FormatAmount(activity[0].Transaction.Amount))
		assert.Equal(t, "Deposit", activity[0].Transaction.Description)
		assert.Equal(t, "1000000001", activity[0].AccountNumber)
		assert.Equal(t, jane.ID, activity[0].Owner.UserID)
		assert.Equal(t, entity.TransactionTypeWithdrawal, activity[1].Transaction.Type)
	})

	t.Run("should limit recent activity", func(t *testing.T) {
		recent, err := repo.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "jane@example.com", recent[0].Owner.Email)
		assert.Equal(t, "40.00", entity.FormatAmount(recent[1].Transaction.Amount))
	})

	t.Run("should list entries since a point in time oldest first", func(t *testing.T) {
		since, err := repo.ListSince(ctx, start.Add(2*time.Hour))
		require.NoError(t, err)
		require.Len(t, since, 3)
		assert.Equal(t, bobAcc.ID, since[0].AccountID)
	})

	t.Run("should count and sum deposits", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)

		totals, err := repo.DepositTotals(ctx)
		require.NoError(t, err)
		byAccount := map[string]entity.AccountDepositTotal{}
		for _, total := range totals {
			byAccount[total.AccountID] = total
		}
		assert.Equal(t, "160.50", entity.FormatAmount(byAccount[janeAcc.ID].Total))
		assert.Equal(t, int64(2), byAccount[janeAcc.ID].Count)
		assert.Equal(t, "300.00", entity.FormatAmount(byAccount[bobAcc.ID].Total))
	})
}
