package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
)

func TestUnitOfWork_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should commit all writes when fn succeeds", func(t *testing.T) {
		tdb := NewTestDBManager(t)
		user := tdb.CreateTestUser(t, "commit@example.com", entity.RoleCustomer)
		uow := tdb.Manager.CreateUnitOfWork()

		err := uow.Execute(ctx, func(txCtx context.Context) error {
			account, err := entity.NewAccount(user.ID, "1111111111", entity.AccountTypeChecking, tdb.TimeProvider)
			if err != nil {
				return err
			}
			if err := uow.GetAccountRepository(txCtx).Create(txCtx, account); err != nil {
				return err
			}
			if _, err := account.Deposit(decimal.NewFromInt(25), tdb.TimeProvider); err != nil {
				return err
			}
			return uow.GetAccountRepository(txCtx).UpdateBalance(txCtx, account)
		})
		require.NoError(t, err)

		accounts, err := uow.GetAccountRepository(ctx).ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "25.00", entity.FormatAmount(accounts[0].Balance))
	})

	t.Run("should roll back every write when fn fails", func(t *testing.T) {
		tdb := NewTestDBManager(t)
		user := tdb.CreateTestUser(t, "rollback@example.com", entity.RoleCustomer)
		uow := tdb.Manager.CreateUnitOfWork()
		boom := errors.New("boom")

		err := uow.Execute(ctx, func(txCtx context.Context) error {
			account, err := entity.NewAccount(user.ID, "2222222222", entity.AccountTypeSavings, tdb.TimeProvider)
			if err != nil {
				return err
			}
			if err := uow.GetAccountRepository(txCtx).Create(txCtx, account); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		exists, err := uow.GetAccountRepository(ctx).AccountNumberExists(ctx, "2222222222")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should retry the whole closure on transient errors", func(t *testing.T) {
		tdb := NewTestDBManager(t)
		uow := tdb.Manager.CreateUnitOfWork()

		calls := 0
		err := uow.Execute(ctx, func(txCtx context.Context) error {
			calls++
			if calls == 1 {
				return fmt.Errorf("serialization: %w", errs.ErrTransient)
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("should join an outer transaction", func(t *testing.T) {
		tdb := NewTestDBManager(t)
		uow := tdb.Manager.CreateUnitOfWork()

		var outer, inner context.Context
		err := uow.Execute(ctx, func(txCtx context.Context) error {
			outer = txCtx
			return uow.Execute(txCtx, func(innerCtx context.Context) error {
				inner = innerCtx
				return nil
			})
		})

		require.NoError(t, err)
		assert.Equal(t, outer, inner)
	})
}

func TestUnitOfWork_BeginCommitRollback(t *testing.T) {
	ctx := context.Background()
	tdb := NewTestDBManager(t)
	user := tdb.CreateTestUser(t, "manual@example.com", entity.RoleCustomer)
	uow := tdb.Manager.CreateUnitOfWork()

	t.Run("should fail commit without a transaction", func(t *testing.T) {
		assert.Error(t, uow.Commit(ctx))
		assert.Error(t, uow.Rollback(ctx))
	})

	t.Run("should discard writes on rollback", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)

		account, err := entity.NewAccount(user.ID, "3333333333", entity.AccountTypeChecking, tdb.TimeProvider)
		require.NoError(t, err)
		require.NoError(t, uow.GetAccountRepository(txCtx).Create(txCtx, account))
		require.NoError(t, uow.Rollback(txCtx))

		exists, err := uow.GetAccountRepository(ctx).AccountNumberExists(ctx, "3333333333")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should persist writes on commit", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)

		account, err := entity.NewAccount(user.ID, "4444444444", entity.AccountTypeChecking, tdb.TimeProvider)
		require.NoError(t, err)
		require.NoError(t, uow.GetAccountRepository(txCtx).Create(txCtx, account))
		require.NoError(t, uow.Commit(txCtx))
		require.NoError(t, uow.Rollback(txCtx))

		exists, err := uow.GetAccountRepository(ctx).AccountNumberExists(ctx, "4444444444")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestManager_PingAndPoolStats(t *testing.T) {
	tdb := NewTestDBManager(t)

	require.NoError(t, tdb.Manager.Ping(context.Background()))

	stats, err := tdb.Manager.PoolStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestConnectionPoolMonitor_Run(t *testing.T) {
	tdb := NewTestDBManager(t)
	monitor := tdb.Manager.NewPoolMonitor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, monitor.Run(ctx, tdb.Config.MonitorInterval))
	assert.Equal(t, 1, monitor.GetMetrics().MaxOpenConnections)
}
