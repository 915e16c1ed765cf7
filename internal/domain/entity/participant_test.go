package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	"github.com/pushpendr-7/auction-engine/mocks/port/core"
)

func TestNewAuctionParticipant(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Valid participant starts unbooked", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), participant.ItemID)
		assert.Equal(t, uint64(2), participant.UserID)
		assert.False(t, participant.IsBooked)
		assert.Empty(t, participant.BookingCode)
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		_, err := NewAuctionParticipant(0, 2, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidItemID)

		_, err = NewAuctionParticipant(1, 0, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestParticipantBookAndUnbook(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Book assigns a numeric code", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)

		require.NoError(t, participant.Book(mockTime))
		assert.True(t, participant.IsBooked)
		assert.Len(t, participant.BookingCode, BookingCodeLength)
	})

	t.Run("Double booking is rejected", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)
		require.NoError(t, participant.Book(mockTime))

		assert.ErrorIs(t, participant.Book(mockTime), errs.ErrSeatAlreadyBooked)
	})

	t.Run("Unbook inside the window", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)
		require.NoError(t, participant.Book(mockTime))

		previewStart := fixedTime.Add(-30 * time.Second)
		participant.PreviewStartedAt = &previewStart

		require.NoError(t, participant.Unbook(mockTime))
		assert.False(t, participant.IsBooked)
		assert.NotNil(t, participant.UnbookedAt)
	})

	t.Run("Unbook after the window is rejected", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)
		require.NoError(t, participant.Book(mockTime))

		previewStart := fixedTime.Add(-UnbookWindow - time.Second)
		participant.PreviewStartedAt = &previewStart

		assert.ErrorIs(t, participant.Unbook(mockTime), errs.ErrUnbookWindowClosed)
		assert.True(t, participant.IsBooked)
	})

	t.Run("Unbook without a booking is rejected", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)

		assert.ErrorIs(t, participant.Unbook(mockTime), errs.ErrSeatNotBooked)
	})
}

func TestParticipantVerifyCode(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Matching code stamps verification", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)
		require.NoError(t, participant.Book(mockTime))

		require.NoError(t, participant.VerifyCode(participant.BookingCode, mockTime))
		assert.NotNil(t, participant.CodeVerifiedAt)
	})

	t.Run("Verification re-activates an unbooked seat", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)
		require.NoError(t, participant.Book(mockTime))
		require.NoError(t, participant.Unbook(mockTime))

		require.NoError(t, participant.VerifyCode(participant.BookingCode, mockTime))
		assert.True(t, participant.IsBooked)
		assert.Nil(t, participant.UnbookedAt)
	})

	t.Run("Wrong or missing code is rejected", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)

		assert.ErrorIs(t, participant.VerifyCode("000000", mockTime), errs.ErrInvalidBookingCode)

		require.NoError(t, participant.Book(mockTime))
		assert.ErrorIs(t, participant.VerifyCode("wrong", mockTime), errs.ErrInvalidBookingCode)
	})
}

func TestParticipantPresence(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	t.Run("Never pinged is not offline", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)

		assert.False(t, participant.IsOffline(fixedTime.Add(time.Hour), 30*time.Second))
	})

	t.Run("Silent past the threshold is offline", func(t *testing.T) {
		participant, err := NewAuctionParticipant(1, 2, mockTime)
		require.NoError(t, err)
		participant.RecordPresence(mockTime)

		assert.False(t, participant.IsOffline(fixedTime.Add(30*time.Second), 30*time.Second))
		assert.True(t, participant.IsOffline(fixedTime.Add(31*time.Second), 30*time.Second))
	})
}

func TestParticipantPenalty(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := new(core.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	participant, err := NewAuctionParticipant(1, 2, mockTime)
	require.NoError(t, err)

	participant.AssessPenalty(mockTime)
	assert.True(t, participant.PenaltyDue)

	participant.ClearPenalty(mockTime)
	assert.False(t, participant.PenaltyDue)
}

func TestNewBookingCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := NewBookingCode()
		require.NoError(t, err)
		require.Len(t, code, BookingCodeLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}
