package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/bank-portal/mocks/port/core"
)

func TestNewAccount(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("should open an empty active account", func(t *testing.T) {
		account, err := NewAccount("user-1", "1234567890", AccountTypeChecking, mockTime)

		require.NoError(t, err)
		assert.NotEmpty(t, account.ID)
		assert.Equal(t, "user-1", account.UserID)
		assert.True(t, account.Balance.IsZero())
		assert.True(t, account.IsActive)
		assert.Equal(t, fixedTime, account.CreatedAt)
		assert.True(t, account.OwnedBy("user-1"))
		assert.False(t, account.OwnedBy("user-2"))
	})

	t.Run("should reject unknown account type", func(t *testing.T) {
		_, err := NewAccount("user-1", "1234567890", AccountType("CRYPTO"), mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("should reject short account number", func(t *testing.T) {
		_, err := NewAccount("user-1", "12345", AccountTypeSavings, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestAccount_Deposit(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("should add exactly without float drift", func(t *testing.T) {
		account := &Account{ID: "acc-1", Balance: decimal.Zero}

		for i := 0; i < 10; i++ {
			_, err := account.Deposit(decimal.RequireFromString("0.10"), mockTime)
			require.NoError(t, err)
		}

		assert.Equal(t, "1.00", FormatAmount(account.Balance))
		assert.Equal(t, fixedTime, account.UpdatedAt)
	})

	t.Run("should reject non-positive and over-precise amounts", func(t *testing.T) {
		account := &Account{ID: "acc-1", Balance: decimal.RequireFromString("10.00")}

		for _, raw := range []string{"0", "-5.00", "1.005"} {
			_, err := account.Deposit(decimal.RequireFromString(raw), mockTime)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, raw)
		}
		assert.Equal(t, "10.00", FormatAmount(account.Balance))
	})

	t.Run("should reject overflow past column maximum", func(t *testing.T) {
		account := &Account{ID: "acc-1", Balance: MaxBalance}

		_, err := account.Deposit(decimal.RequireFromString("0.01"), mockTime)

		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
		assert.True(t, account.Balance.Equal(MaxBalance))
	})
}

func TestAccount_Withdraw(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("should subtract when funds suffice", func(t *testing.T) {
		account := &Account{ID: "acc-1", Balance: decimal.RequireFromString("100.00")}

		newBalance, err := account.Withdraw(decimal.RequireFromString("40.25"), mockTime)

		require.NoError(t, err)
		assert.Equal(t, "59.75", FormatAmount(newBalance))
	})

	t.Run("should allow withdrawing the full balance", func(t *testing.T) {
		account := &Account{ID: "acc-1", Balance: decimal.RequireFromString("25.00")}

		newBalance, err := account.Withdraw(decimal.RequireFromString("25"), mockTime)

		require.NoError(t, err)
		assert.True(t, newBalance.IsZero())
	})

	t.Run("should leave balance unchanged on insufficient funds", func(t *testing.T) {
		account := &Account{ID: "acc-1", Balance: decimal.RequireFromString("10.00")}

		_, err := account.Withdraw(decimal.RequireFromString("10.01"), mockTime)

		assert.True(t, errs.IsInsufficientBalanceError(err))
		var detailed *errs.InsufficientBalanceError
		require.True(t, errors.As(err, &detailed))
		assert.Equal(t, "10.00", detailed.CurrBalance)
		assert.Equal(t, "10.00", FormatAmount(account.Balance))
	})
}
