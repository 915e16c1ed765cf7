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
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/domain/usecase/ledger"
	"github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"
	coremocks "github.com/pushpendr-7/auction-engine/mocks/port/core"
	persistencemocks "github.com/pushpendr-7/auction-engine/mocks/port/persistence"
)

var testFixedTime = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

type biddingFixture struct {
	uow             *persistencemocks.MockUnitOfWork
	itemRepo        *persistencemocks.MockItemRepository
	bidRepo         *persistencemocks.MockBidRepository
	walletRepo      *persistencemocks.MockWalletRepository
	holdRepo        *persistencemocks.MockHoldRepository
	auditRepo       *persistencemocks.MockWalletTransactionRepository
	participantRepo *persistencemocks.MockParticipantRepository
	paymentRepo     *persistencemocks.MockPaymentRepository
	ledgerRepo      *persistencemocks.MockLedgerRepository
	notifier        *coremocks.MockNotifier
	timeProvider    *coremocks.MockTimeProvider
	service         *Service
}

func newBiddingFixture() *biddingFixture {
	f := &biddingFixture{
		uow:             new(persistencemocks.MockUnitOfWork),
		itemRepo:        new(persistencemocks.MockItemRepository),
		bidRepo:         new(persistencemocks.MockBidRepository),
		walletRepo:      new(persistencemocks.MockWalletRepository),
		holdRepo:        new(persistencemocks.MockHoldRepository),
		auditRepo:       new(persistencemocks.MockWalletTransactionRepository),
		participantRepo: new(persistencemocks.MockParticipantRepository),
		paymentRepo:     new(persistencemocks.MockPaymentRepository),
		ledgerRepo:      new(persistencemocks.MockLedgerRepository),
		notifier:        new(coremocks.MockNotifier),
		timeProvider:    new(coremocks.MockTimeProvider),
	}
	f.uow.On("GetItemRepository", mock.Anything).Return(f.itemRepo)
	f.uow.On("GetBidRepository", mock.Anything).Return(f.bidRepo)
	f.uow.On("GetWalletRepository", mock.Anything).Return(f.walletRepo)
	f.uow.On("GetHoldRepository", mock.Anything).Return(f.holdRepo)
	f.uow.On("GetWalletTransactionRepository", mock.Anything).Return(f.auditRepo)
	f.uow.On("GetParticipantRepository", mock.Anything).Return(f.participantRepo)
	f.uow.On("GetPaymentRepository", mock.Anything).Return(f.paymentRepo)
	f.uow.On("GetLedgerRepository", mock.Anything).Return(f.ledgerRepo)
	f.uow.On("Begin", mock.Anything).Return(context.Background(), nil).Maybe()
	f.uow.On("Commit", mock.Anything).Return(nil).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	f.timeProvider.On("Now").Return(testFixedTime)

	mockLogger := new(coremocks.MockLogger)
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return().Maybe()

	holds := wallet.NewHoldManager(f.uow, f.timeProvider, mockLogger)
	ledgerService := ledger.NewService(f.uow, f.timeProvider, mockLogger)

	f.service = NewService(f.uow, holds, ledgerService, f.notifier, f.timeProvider, mockLogger, Config{
		MinimumIncrementInCents: 100,
		SeatFeeInCents:          500,
		PenaltyInCents:          20000,
		MaxBidMultiplier:        1000,
		MarketOpenHour:          0,
		MarketCloseHour:         0,
		MinimumParticipants:     2,
		OfflineThreshold:        coreport.Duration(30 * time.Second),
	})
	return f
}

func (f *biddingFixture) openItem() *entity.AuctionItem {
	return &entity.AuctionItem{
		ID:                   1,
		OwnerID:              9,
		StartingPriceInCents: 10000,
		StartsAt:             testFixedTime.Add(-time.Hour),
		EndsAt:               testFixedTime.Add(time.Hour),
		IsActive:             true,
		SeatLimit:            10,
	}
}

func (f *biddingFixture) bookedParticipant(itemID, userID uint64) *entity.AuctionParticipant {
	return &entity.AuctionParticipant{
		ItemID:      itemID,
		UserID:      userID,
		IsBooked:    true,
		BookingCode: "123456",
		Paid:        true,
	}
}

func (f *biddingFixture) walletWithBalance(userID uint64, balanceInCents int64) *entity.Wallet {
	w, _ := entity.NewWallet(userID, f.timeProvider)
	w.SetBalance(balanceInCents, f.timeProvider)
	return w
}

func TestPlaceBid(t *testing.T) {
	ctx := context.Background()

	t.Run("Outbid releases the previous leader's hold", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		previousLeader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 10000, IsActive: true, CreatedAt: testFixedTime.Add(-time.Minute)}
		leaderHold := &entity.WalletHold{UserID: 3, ItemID: 1, AmountInCents: 10000, Status: entity.HoldActive}

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(previousLeader, nil)

		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 50000), nil)
		f.walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 50000), nil)
		f.holdRepo.On("SumActiveByUser", mock.Anything, uint64(2)).Return(int64(0), nil)
		f.holdRepo.On("GetActive", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)
		f.holdRepo.On("GetActiveForUpdate", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)
		f.holdRepo.On("Create", mock.Anything, mock.MatchedBy(func(h *entity.WalletHold) bool {
			return h.UserID == 2 && h.ItemID == 1 && h.AmountInCents == 15000
		})).Return(nil)

		f.holdRepo.On("GetActiveForUpdate", mock.Anything, uint64(3), uint64(1)).Return(leaderHold, nil)
		f.holdRepo.On("Update", mock.Anything, leaderHold).Return(nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(3)).Return(f.walletWithBalance(3, 10000), nil)

		f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.bidRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Bid) bool {
			return b.ItemID == 1 && b.BidderID == 2 && b.AmountInCents == 15000 && b.IsActive
		})).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("PublishBidPlaced", mock.Anything, mock.Anything).Return(nil)

		bid, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		require.NoError(t, err)
		assert.Equal(t, "150.00", bid.GetAmount())
		assert.Equal(t, entity.HoldReleased, leaderHold.Status)
		f.bidRepo.AssertExpectations(t)
		f.holdRepo.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Bid at the exact minimum is accepted", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		previousLeader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 15000, IsActive: true}
		leaderHold := &entity.WalletHold{UserID: 3, ItemID: 1, AmountInCents: 15000, Status: entity.HoldActive}

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(previousLeader, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(f.walletWithBalance(2, 50000), nil)
		f.walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 50000), nil)
		f.holdRepo.On("SumActiveByUser", mock.Anything, uint64(2)).Return(int64(0), nil)
		f.holdRepo.On("GetActive", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)
		f.holdRepo.On("GetActiveForUpdate", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)
		f.holdRepo.On("GetActiveForUpdate", mock.Anything, uint64(3), uint64(1)).Return(leaderHold, nil)
		f.holdRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.holdRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.bidRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("PublishBidPlaced", mock.Anything, mock.Anything).Return(nil)

		// Leader holds 150.00, increment is 1.00, so 151.00 is the floor
		bid, err := f.service.PlaceBid(ctx, 1, 2, "151.00")

		require.NoError(t, err)
		assert.Equal(t, int64(15100), bid.AmountInCents)
	})

	t.Run("One cent below the minimum is rejected", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		previousLeader := &entity.Bid{ItemID: 1, BidderID: 3, AmountInCents: 15000, IsActive: true}

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(previousLeader, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.99")

		assert.ErrorIs(t, err, errs.ErrBidTooLow)
		var detailed *errs.BidTooLowError
		require.ErrorAs(t, err, &detailed)
		assert.Equal(t, "151.00", detailed.Minimum)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("First bid must meet the starting price", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(nil, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "99.99")

		assert.ErrorIs(t, err, errs.ErrBidTooLow)
	})

	t.Run("Owner cannot bid on their own item", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.openItem(), nil)

		_, err := f.service.PlaceBid(ctx, 1, 9, "150.00")

		assert.ErrorIs(t, err, errs.ErrOwnerCannotBid)
	})

	t.Run("Settled item rejects bids", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		item.IsSettled = true
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrBiddingClosed)
	})

	t.Run("Bidder without a booked seat is rejected", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.openItem(), nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrSeatNotBooked)
	})

	t.Run("Outstanding penalty blocks bidding", func(t *testing.T) {
		f := newBiddingFixture()
		participant := f.bookedParticipant(1, 2)
		participant.PenaltyDue = true
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.openItem(), nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrPenaltyDue)
	})

	t.Run("Too few booked participants", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.openItem(), nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(1, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrInsufficientParticipants)
	})

	t.Run("Bid above the sanity ceiling is rejected", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.openItem(), nil)

		// Starting price 100.00 with multiplier 1000 caps bids at 100000.00
		_, err := f.service.PlaceBid(ctx, 1, 2, "100000.01")

		assert.ErrorIs(t, err, errs.ErrBidUnreasonablyHigh)
	})

	t.Run("Insufficient available balance is rejected before locking", func(t *testing.T) {
		f := newBiddingFixture()
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.openItem(), nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(nil, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 5000), nil)
		f.holdRepo.On("SumActiveByUser", mock.Anything, uint64(2)).Return(int64(0), nil)
		f.holdRepo.On("GetActive", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Invalid amount format", func(t *testing.T) {
		f := newBiddingFixture()

		_, err := f.service.PlaceBid(ctx, 1, 2, "abc")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Penalty landed while waiting for the item lock", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		penalized := f.bookedParticipant(1, 2)
		penalized.PenaltyDue = true

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil).Once()
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(penalized, nil).Once()
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(nil, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 50000), nil)
		f.holdRepo.On("SumActiveByUser", mock.Anything, uint64(2)).Return(int64(0), nil)
		f.holdRepo.On("GetActive", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrPenaltyDue)
		f.participantRepo.AssertNumberOfCalls(t, "GetByItemAndUser", 2)
		f.holdRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("Seat released while waiting for the item lock", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()
		unbooked := f.bookedParticipant(1, 2)
		unbooked.IsBooked = false

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil).Once()
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(unbooked, nil).Once()
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil)
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(nil, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 50000), nil)
		f.holdRepo.On("SumActiveByUser", mock.Anything, uint64(2)).Return(int64(0), nil)
		f.holdRepo.On("GetActive", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrSeatNotBooked)
		f.bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Participant count dropped while waiting for the item lock", func(t *testing.T) {
		f := newBiddingFixture()
		item := f.openItem()

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.participantRepo.On("GetByItemAndUser", mock.Anything, uint64(1), uint64(2)).Return(f.bookedParticipant(1, 2), nil)
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(2, nil).Once()
		f.participantRepo.On("CountBooked", mock.Anything, uint64(1)).Return(1, nil).Once()
		f.bidRepo.On("GetLeader", mock.Anything, uint64(1)).Return(nil, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 50000), nil)
		f.holdRepo.On("SumActiveByUser", mock.Anything, uint64(2)).Return(int64(0), nil)
		f.holdRepo.On("GetActive", mock.Anything, uint64(2), uint64(1)).Return(nil, nil)

		_, err := f.service.PlaceBid(ctx, 1, 2, "150.00")

		assert.ErrorIs(t, err, errs.ErrInsufficientParticipants)
		f.bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetBid(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the bid for a known transaction ID", func(t *testing.T) {
		f := newBiddingFixture()
		bid := &entity.Bid{ID: 5, ItemID: 1, BidderID: 2, AmountInCents: 15000, IsActive: true, TxID: "abc-123"}
		f.bidRepo.On("GetByTxID", mock.Anything, "abc-123").Return(bid, nil)

		got, err := f.service.GetBid(ctx, "abc-123")

		require.NoError(t, err)
		assert.Equal(t, bid, got)
	})

	t.Run("Unknown transaction ID", func(t *testing.T) {
		f := newBiddingFixture()
		f.bidRepo.On("GetByTxID", mock.Anything, "missing").Return(nil, errs.ErrNotFound)

		_, err := f.service.GetBid(ctx, "missing")

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Empty transaction ID", func(t *testing.T) {
		f := newBiddingFixture()

		_, err := f.service.GetBid(ctx, "")

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		f.bidRepo.AssertNotCalled(t, "GetByTxID", mock.Anything, mock.Anything)
	})
}
