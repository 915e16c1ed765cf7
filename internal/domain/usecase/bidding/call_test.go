package bidding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
)

func TestStartPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("Stamps the preview time on every booked participant", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		first := f.bookedParticipant(1, 2)
		second := f.bookedParticipant(1, 3)

		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("ListBookedByItem", mock.Anything, uint64(1)).Return([]*entity.AuctionParticipant{first, second}, nil)
		f.participantRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.AuctionParticipant) bool {
			return p.PreviewStartedAt != nil && p.PreviewStartedAt.Equal(testFixedTime)
		})).Return(nil).Twice()

		err := f.service.StartPreview(ctx, 1, 9)

		require.NoError(t, err)
		require.NotNil(t, first.PreviewStartedAt)
		require.NotNil(t, second.PreviewStartedAt)
		f.participantRepo.AssertExpectations(t)
	})

	t.Run("Non-owner cannot start the preview", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(f.openItem(), nil)

		err := f.service.StartPreview(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrNotItemOwner)
		f.participantRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Settled item rejects the preview", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		item.IsSettled = true
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)

		err := f.service.StartPreview(ctx, 1, 9)

		assert.ErrorIs(t, err, errs.ErrBiddingClosed)
	})

	t.Run("Preview opens the unbooking window", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		participant := f.bookedParticipant(1, 2)

		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("ListBookedByItem", mock.Anything, uint64(1)).Return([]*entity.AuctionParticipant{participant}, nil)
		f.participantRepo.On("Update", mock.Anything, participant).Return(nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)

		require.NoError(t, f.service.StartPreview(ctx, 1, 9))
		err := f.service.UnbookSeat(ctx, 1, 2)

		require.NoError(t, err)
		assert.False(t, participant.IsBooked)
	})
}

func TestStartCall(t *testing.T) {
	ctx := context.Background()

	t.Run("Stamps the call start time on the item", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()

		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.itemRepo.On("Update", mock.Anything, mock.MatchedBy(func(i *entity.AuctionItem) bool {
			return i.CallStartedAt != nil && i.CallStartedAt.Equal(testFixedTime)
		})).Return(nil)

		err := f.service.StartCall(ctx, 1, 9)

		require.NoError(t, err)
		require.NotNil(t, item.CallStartedAt)
		f.itemRepo.AssertExpectations(t)
	})

	t.Run("Non-owner cannot start the call", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(f.openItem(), nil)

		err := f.service.StartCall(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrNotItemOwner)
		f.itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Settled item rejects the call", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		item.IsSettled = true
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)

		err := f.service.StartCall(ctx, 1, 9)

		assert.ErrorIs(t, err, errs.ErrBiddingClosed)
	})
}
