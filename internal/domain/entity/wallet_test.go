package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	"github.com/pushpendr-7/auction-engine/mocks/port/core"
)

func TestNewWallet(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid wallet starts empty", func(t *testing.T) {
		wallet, err := NewWallet(2, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(2), wallet.UserID)
		assert.Equal(t, int64(0), wallet.Balance())
		assert.Equal(t, "0.00", wallet.GetBalance())
		assert.False(t, wallet.AutoDebitConsent)
	})

	t.Run("Zero user ID is rejected", func(t *testing.T) {
		_, err := NewWallet(0, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestWalletCreditAndDebit(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Credit adds to the balance", func(t *testing.T) {
		wallet, err := NewWallet(2, mockTime)
		require.NoError(t, err)

		require.NoError(t, wallet.Credit(50000, mockTime))
		assert.Equal(t, int64(50000), wallet.Balance())
		assert.Equal(t, "500.00", wallet.GetBalance())
	})

	t.Run("Debit subtracts from the balance", func(t *testing.T) {
		wallet, err := NewWallet(2, mockTime)
		require.NoError(t, err)
		require.NoError(t, wallet.Credit(50000, mockTime))

		require.NoError(t, wallet.Debit(20000, mockTime))
		assert.Equal(t, int64(30000), wallet.Balance())
	})

	t.Run("Balance never goes negative", func(t *testing.T) {
		wallet, err := NewWallet(2, mockTime)
		require.NoError(t, err)
		require.NoError(t, wallet.Credit(10000, mockTime))

		err = wallet.Debit(10001, mockTime)
		assert.ErrorIs(t, err, errs.ErrInsufficientWalletBalance)
		assert.Equal(t, int64(10000), wallet.Balance())
	})

	t.Run("Negative amounts are rejected", func(t *testing.T) {
		wallet, err := NewWallet(2, mockTime)
		require.NoError(t, err)

		assert.ErrorIs(t, wallet.Credit(-1, mockTime), errs.ErrNegativeAmount)
		assert.ErrorIs(t, wallet.Debit(-1, mockTime), errs.ErrNegativeAmount)
	})
}

func TestWalletAvailableBalance(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	wallet, err := NewWallet(2, mockTime)
	require.NoError(t, err)
	wallet.SetBalance(50000, mockTime)

	t.Run("Holds reduce availability", func(t *testing.T) {
		assert.Equal(t, int64(35000), wallet.AvailableBalance(15000))
	})

	t.Run("No holds means full balance", func(t *testing.T) {
		assert.Equal(t, int64(50000), wallet.AvailableBalance(0))
	})

	t.Run("Floored at zero", func(t *testing.T) {
		assert.Equal(t, int64(0), wallet.AvailableBalance(60000))
	})
}

func TestNewWalletTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid audit row", func(t *testing.T) {
		audit, err := NewWalletTransaction(2, KindHoldReserve, 15000, 50000, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(2), audit.UserID)
		assert.Equal(t, KindHoldReserve, audit.Kind)
		assert.Equal(t, int64(15000), audit.AmountInCents)
		assert.Equal(t, int64(50000), audit.BalanceAfter)
	})

	t.Run("Item and payment links", func(t *testing.T) {
		audit, err := NewWalletTransaction(2, KindCredit, 15000, 50000, mockTime)
		require.NoError(t, err)

		audit.WithItem(1).WithPayment(7)
		assert.Equal(t, uint64(1), audit.ItemID)
		assert.Equal(t, uint64(7), audit.PaymentID)
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		_, err := NewWalletTransaction(0, KindCredit, 15000, 0, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewWalletTransaction(2, KindCredit, -1, 0, mockTime)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)

		_, err = NewWalletTransaction(2, TransactionKind("transfer"), 15000, 0, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestIsValidTransactionKind(t *testing.T) {
	for _, kind := range []string{"credit", "debit", "hold_reserve", "hold_release", "hold_consume"} {
		assert.True(t, IsValidTransactionKind(kind), kind)
	}
	assert.False(t, IsValidTransactionKind("transfer"))
	assert.False(t, IsValidTransactionKind(""))
}
