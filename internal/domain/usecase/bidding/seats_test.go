package bidding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
)

func TestBookSeat(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending seat fee payment for a new participant", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()

		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(0, nil)
		f.participantRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.AuctionParticipant) bool {
			return p.ItemID == 1 && p.UserID == 2 && !p.IsBooked
		})).Return(nil)
		f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Purpose == entity.PurposeSeat && p.AmountInCents == 500 && p.BuyerID == 2 && p.ItemID == 1
		})).Return(nil)

		payment, err := f.service.BookSeat(ctx, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentPending, payment.Status)
		assert.Equal(t, "5.00", payment.GetAmount())
		f.participantRepo.AssertExpectations(t)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("Already booked seat is rejected", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(f.openItem(), nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)

		_, err := f.service.BookSeat(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrSeatAlreadyBooked)
	})

	t.Run("Seat limit is enforced", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		item.SeatLimit = 2
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)

		_, err := f.service.BookSeat(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrNoSeatsAvailable)
	})

	t.Run("Owner cannot book a seat", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(f.openItem(), nil)

		_, err := f.service.BookSeat(ctx, 1, 9)

		assert.ErrorIs(t, err, errs.ErrOwnerCannotBid)
	})

	t.Run("Ended auction rejects bookings", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		item.EndsAt = testFixedTime.Add(-time.Minute)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)

		_, err := f.service.BookSeat(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrBiddingClosed)
	})
}

func TestUnbookSeat(t *testing.T) {
	ctx := context.Background()

	t.Run("Unbooks inside the window", func(t *testing.T) {
		f := newBiddingFixture()
		participant := f.bookedParticipant(1, 2)
		previewStart := testFixedTime.Add(-30 * time.Second)
		participant.PreviewStartedAt = &previewStart

		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)
		f.participantRepo.On("Update", mock.Anything, participant).Return(nil)

		err := f.service.UnbookSeat(ctx, 1, 2)

		require.NoError(t, err)
		assert.False(t, participant.IsBooked)
	})

	t.Run("Window closed", func(t *testing.T) {
		f := newBiddingFixture()
		participant := f.bookedParticipant(1, 2)
		previewStart := testFixedTime.Add(-2 * time.Minute)
		participant.PreviewStartedAt = &previewStart

		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)

		err := f.service.UnbookSeat(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrUnbookWindowClosed)
		assert.True(t, participant.IsBooked)
	})

	t.Run("Unknown participant", func(t *testing.T) {
		f := newBiddingFixture()
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)

		err := f.service.UnbookSeat(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrSeatNotBooked)
	})
}

func TestVerifyCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid code stamps verification", func(t *testing.T) {
		f := newBiddingFixture()
		participant := f.bookedParticipant(1, 2)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)
		f.participantRepo.On("Update", mock.Anything, participant).Return(nil)

		err := f.service.VerifyCode(ctx, 1, 2, "123456")

		require.NoError(t, err)
		assert.NotNil(t, participant.CodeVerifiedAt)
	})

	t.Run("Wrong code", func(t *testing.T) {
		f := newBiddingFixture()
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)

		err := f.service.VerifyCode(ctx, 1, 2, "000000")

		assert.ErrorIs(t, err, errs.ErrInvalidBookingCode)
	})
}

func TestPresencePing(t *testing.T) {
	ctx := context.Background()

	t.Run("Refreshes the heartbeat", func(t *testing.T) {
		f := newBiddingFixture()
		participant := f.bookedParticipant(1, 2)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)
		f.participantRepo.On("Update", mock.Anything, participant).Return(nil)

		err := f.service.PresencePing(ctx, 1, 2)

		require.NoError(t, err)
		require.NotNil(t, participant.LastSeenAt)
		assert.Equal(t, testFixedTime, *participant.LastSeenAt)
	})

	t.Run("Unbooked participant cannot ping", func(t *testing.T) {
		f := newBiddingFixture()
		participant := f.bookedParticipant(1, 2)
		participant.IsBooked = false
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)

		err := f.service.PresencePing(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrSeatNotBooked)
	})
}
