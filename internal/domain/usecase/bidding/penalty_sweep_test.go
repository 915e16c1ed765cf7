package bidding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

func TestPenaltySweep(t *testing.T) {
	ctx := context.Background()

	t.Run("Offline leader is penalized", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		leader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 15000, IsActive: true}
		lastSeen := testFixedTime.Add(-time.Minute)
		participant := f.bookedParticipant(1, 3)
		participant.LastSeenAt = &lastSeen
		leaderHold := &entity.WalletHold{UserID: 3, ItemID: 1, AmountInCents: 15000, Status: entity.HoldActive}

		f.itemRepo.On("ListActive", mock.Anything, testFixedTime).Return([]*entity.AuctionItem{item}, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(leader, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(3)).Return(participant, nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(3)).Return(participant, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Purpose == entity.PurposePenalty && p.BuyerID == 3 && p.AmountInCents == 20000
		})).Return(nil)
		f.participantRepo.On("Update", mock.Anything, participant).Return(nil)
		f.bidRepo.On("DeactivateByBidder", mock.Anything, uint64(1), uint64(3)).Return(nil)
		f.bidRepo.On("ListActiveByItem", mock.Anything, uint64(1)).Return([]*entity.Bid{
			{ItemID: 1, BidderID: 4, AmountInCents: 14000, IsActive: true, CreatedAt: testFixedTime.Add(-2 * time.Minute)},
			{ItemID: 1, BidderID: 5, AmountInCents: 14000, IsActive: true, CreatedAt: testFixedTime.Add(-time.Minute)},
		}, nil)
		f.holdRepo.On("GetActiveForUpdate", mock.Anything, uint64(3), uint64(1)).Return(leaderHold, nil)
		f.holdRepo.On("Update", mock.Anything, leaderHold).Return(nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(3)).Return(f.walletWithBalance(3, 50000), nil)
		f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("PublishPenaltyAssessed", mock.Anything, mock.Anything).Return(nil)

		assessed, err := f.service.PenaltySweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, assessed)
		assert.True(t, participant.PenaltyDue)
		assert.Equal(t, entity.HoldReleased, leaderHold.Status)
		f.paymentRepo.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Online leader is left alone", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		leader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 15000, IsActive: true}
		lastSeen := testFixedTime.Add(-10 * time.Second)
		participant := f.bookedParticipant(1, 3)
		participant.LastSeenAt = &lastSeen

		f.itemRepo.On("ListActive", mock.Anything, testFixedTime).Return([]*entity.AuctionItem{item}, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(leader, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(3)).Return(participant, nil)

		assessed, err := f.service.PenaltySweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, assessed)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Leader who never pinged is not penalized", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		leader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 15000, IsActive: true}

		f.itemRepo.On("ListActive", mock.Anything, testFixedTime).Return([]*entity.AuctionItem{item}, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(leader, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(3)).Return(f.bookedParticipant(1, 3), nil)

		assessed, err := f.service.PenaltySweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, assessed)
	})

	t.Run("Item without bids is skipped", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()

		f.itemRepo.On("ListActive", mock.Anything, testFixedTime).Return([]*entity.AuctionItem{item}, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(nil, nil)

		assessed, err := f.service.PenaltySweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, assessed)
	})

	t.Run("Already flagged leader is not penalized twice", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		leader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 15000, IsActive: true}
		lastSeen := testFixedTime.Add(-time.Minute)
		participant := f.bookedParticipant(1, 3)
		participant.LastSeenAt = &lastSeen
		participant.PenaltyDue = true

		f.itemRepo.On("ListActive", mock.Anything, testFixedTime).Return([]*entity.AuctionItem{item}, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(leader, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(3)).Return(participant, nil)

		assessed, err := f.service.PenaltySweep(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, assessed)
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
