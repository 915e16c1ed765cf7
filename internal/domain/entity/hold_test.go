package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	"github.com/pushpendr-7/auction-engine/mocks/port/core"
)

func TestNewWalletHold(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid hold", func(t *testing.T) {
		hold, err := NewWalletHold(2, 1, 15000, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(2), hold.UserID)
		assert.Equal(t, uint64(1), hold.ItemID)
		assert.Equal(t, int64(15000), hold.AmountInCents)
		assert.Equal(t, HoldActive, hold.Status)
		assert.True(t, hold.IsActive())
		assert.Equal(t, "150.00", hold.GetAmount())
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		_, err := NewWalletHold(0, 1, 15000, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewWalletHold(2, 0, 15000, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidItemID)

		_, err = NewWalletHold(2, 1, 0, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestWalletHoldRaise(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Raise grows the hold and returns the delta", func(t *testing.T) {
		hold, err := NewWalletHold(2, 1, 10000, mockTime)
		require.NoError(t, err)

		delta, err := hold.Raise(15000, mockTime)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), delta)
		assert.Equal(t, int64(15000), hold.AmountInCents)
	})

	t.Run("Raising to an equal or lower amount is a no-op", func(t *testing.T) {
		hold, err := NewWalletHold(2, 1, 10000, mockTime)
		require.NoError(t, err)

		delta, err := hold.Raise(10000, mockTime)
		require.NoError(t, err)
		assert.Equal(t, int64(0), delta)
		assert.Equal(t, int64(10000), hold.AmountInCents)

		delta, err = hold.Raise(5000, mockTime)
		require.NoError(t, err)
		assert.Equal(t, int64(0), delta)
		assert.Equal(t, int64(10000), hold.AmountInCents)
	})

	t.Run("Released hold cannot be raised", func(t *testing.T) {
		hold, err := NewWalletHold(2, 1, 10000, mockTime)
		require.NoError(t, err)
		require.NoError(t, hold.Release(mockTime))

		_, err = hold.Raise(15000, mockTime)
		assert.ErrorIs(t, err, errs.ErrNoActiveHold)
	})
}

func TestWalletHoldLifecycle(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Release is one-way", func(t *testing.T) {
		hold, err := NewWalletHold(2, 1, 10000, mockTime)
		require.NoError(t, err)

		require.NoError(t, hold.Release(mockTime))
		assert.Equal(t, HoldReleased, hold.Status)
		assert.False(t, hold.IsActive())

		assert.ErrorIs(t, hold.Release(mockTime), errs.ErrNoActiveHold)
		assert.ErrorIs(t, hold.Consume(mockTime), errs.ErrNoActiveHold)
	})

	t.Run("Consume is one-way", func(t *testing.T) {
		hold, err := NewWalletHold(2, 1, 10000, mockTime)
		require.NoError(t, err)

		require.NoError(t, hold.Consume(mockTime))
		assert.Equal(t, HoldConsumed, hold.Status)

		assert.ErrorIs(t, hold.Consume(mockTime), errs.ErrNoActiveHold)
		assert.ErrorIs(t, hold.Release(mockTime), errs.ErrNoActiveHold)
	})
}
