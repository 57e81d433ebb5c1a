package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/security"
)

func TestManager_Migrate(t *testing.T) {
	tdb := NewTestDBManager(t)
	ctx := context.Background()

	t.Run("should record the schema version once", func(t *testing.T) {
		require.NoError(t, tdb.Manager.Migrate(ctx))

		var count int64
		require.NoError(t, tdb.Manager.DB().Model(&model.SchemaVersion{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		version, err := migration.NewMigrationManager(tdb.Manager.DB(), tdb.Logger, tdb.TimeProvider).GetCurrentVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, migration.CurrentSchemaVersion, version)
	})
}

func TestManager_Seed(t *testing.T) {
	tdb := NewTestDBManager(t)
	ctx := context.Background()
	hasher := security.NewBcryptHasher(4)

	first, err := tdb.Manager.Seed(ctx, hasher)
	require.NoError(t, err)
	assert.Equal(t, len(migration.DemoUsers), first.Users)
	assert.Equal(t, 6, first.Accounts)
	assert.Equal(t, 30, first.Transactions)

	t.Run("should be idempotent", func(t *testing.T) {
		second, err := tdb.Manager.Seed(ctx, hasher)
		require.NoError(t, err)
		assert.Equal(t, migration.SeedResult{}, second)
	})

	t.Run("should leave the demo customer with a consistent ledger", func(t *testing.T) {
		uow := tdb.Manager.CreateUnitOfWork()
		user, err := uow.GetUserRepository(ctx).GetByEmail(ctx, "customer@example.com")
		require.NoError(t, err)
		assert.True(t, hasher.Verify("customer123", user.PasswordHash))

		accounts, err := uow.GetAccountRepository(ctx).ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "1234567890", accounts[0].AccountNumber)
		assert.Equal(t, "1000.00", entity.FormatAmount(accounts[0].Balance))

		entries, err := uow.GetTransactionRepository(ctx).ListByAccount(ctx, accounts[0].ID)
		require.NoError(t, err)
		require.Len(t, entries, 4)
		// newest first
		assert.Equal(t, "Shopping", entries[0].Description)
		assert.Equal(t, "1000.00", entity.FormatAmount(entries[0].BalanceAfter))
	})

	t.Run("should give staff no accounts", func(t *testing.T) {
		uow := tdb.Manager.CreateUnitOfWork()
		banker, err := uow.GetUserRepository(ctx).GetByEmail(ctx, "banker@bank.com")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleBanker, banker.Role)

		accounts, err := uow.GetAccountRepository(ctx).ListByUser(ctx, banker.ID)
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})
}
