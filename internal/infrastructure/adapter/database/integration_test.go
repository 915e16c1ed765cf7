package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	"github.com/pushpendr-7/auction-engine/internal/domain/port/persistence"
	biddingUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/bidding"
	ledgerUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/ledger"
	settlementUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/settlement"
	walletUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/events"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/logger"
)

// setupIntegrationDB connects to the test database pointed at by the TEST_DB_*
// environment variables and recreates the schema
func setupIntegrationDB(t *testing.T) (*TestDBManager, persistence.UnitOfWork) {
	t.Helper()

	if os.Getenv("RUN_DB_TESTS") != "true" {
		t.Skip("Skipping database integration tests; set RUN_DB_TESTS=true to enable")
	}

	testDB := NewTestDBManager(t, logger.NewNoopLogger())
	require.NoError(t, testDB.Connect(t))
	t.Cleanup(func() { testDB.Close(t) })

	testDB.SetupTestDB(t)

	uow := NewUnitOfWork(testDB.Manager.DB(), testDB.Logger, testDB.TimeProvider)
	return testDB, uow
}

func TestIntegrationWalletHoldFlow(t *testing.T) {
	testDB, uow := setupIntegrationDB(t)
	holds := walletUseCase.NewHoldManager(uow, testDB.TimeProvider, testDB.Logger)
	ctx := context.Background()

	// Credit creates the wallet on first touch
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	wallet, err := holds.Credit(txCtx, 1, 10000, 0)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, int64(10000), wallet.Balance())

	// Reserve a hold and check the earmarked funds
	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	hold, err := holds.ReserveOrRaise(txCtx, 1, 1, 4000)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, entity.HoldActive, hold.Status)

	available, err := holds.AvailableBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), available)

	// The partial unique index rejects a second active hold for the pair
	duplicate, err := entity.NewWalletHold(1, 1, 1000, testDB.TimeProvider)
	require.NoError(t, err)
	err = uow.GetHoldRepository(ctx).Create(ctx, duplicate)
	assert.ErrorIs(t, err, errs.ErrDuplicateHold)

	// Consume debits the wallet and closes the hold
	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	consumed, err := holds.Consume(txCtx, 1, 1)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, entity.HoldConsumed, consumed.Status)

	available, err = holds.AvailableBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), available)

	// Every mutation left an audit row
	rows, err := uow.GetWalletTransactionRepository(ctx).ListByUser(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestIntegrationLedgerChain(t *testing.T) {
	testDB, uow := setupIntegrationDB(t)
	ledgerService := ledgerUseCase.NewService(uow, testDB.TimeProvider, testDB.Logger)
	ctx := context.Background()

	for _, payload := range []map[string]any{
		{"type": "bid_placed", "item_id": 1},
		{"type": "auction_closed", "item_id": 1},
	} {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		_, err = ledgerService.Append(txCtx, payload)
		require.NoError(t, err)
		require.NoError(t, uow.Commit(txCtx))
	}

	ok, _, err := ledgerService.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := ledgerService.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	blocks, err := ledgerService.Export(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, entity.GenesisPreviousHash, blocks[0].PreviousHash)
	assert.Equal(t, blocks[0].Hash, blocks[1].PreviousHash)
}

// TestIntegrationAuctionScenario runs the full outbid-and-settle flow:
// two bidders, the later higher bid releases the earlier hold, and
// settlement collects from the winner's wallet.
func TestIntegrationAuctionScenario(t *testing.T) {
	testDB, uow := setupIntegrationDB(t)
	ctx := context.Background()
	now := testDB.TimeProvider.Now()

	holds := walletUseCase.NewHoldManager(uow, testDB.TimeProvider, testDB.Logger)
	ledgerService := ledgerUseCase.NewService(uow, testDB.TimeProvider, testDB.Logger)
	notifier := events.NewNoopNotifier()

	biddingService := biddingUseCase.NewService(uow, holds, ledgerService, notifier, testDB.TimeProvider, testDB.Logger, biddingUseCase.Config{
		MinimumIncrementInCents: 100,
		SeatFeeInCents:          500,
		PenaltyInCents:          20000,
		MaxBidMultiplier:        1000,
		MinimumParticipants:     2,
	})
	settlementService := settlementUseCase.NewService(uow, holds, ledgerService, notifier, testDB.TimeProvider, testDB.Logger, settlementUseCase.Config{
		SweepBatchLimit: 50,
	})

	const (
		ownerID = uint64(9)
		bidderA = uint64(2)
		bidderB = uint64(3)
	)

	item := &entity.AuctionItem{
		OwnerID:              ownerID,
		Title:                "Vintage radio",
		StartingPriceInCents: 10000,
		StartsAt:             now.Add(-time.Hour),
		EndsAt:               now.Add(time.Hour),
		IsActive:             true,
		SeatLimit:            10,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	require.NoError(t, uow.GetItemRepository(ctx).Create(ctx, item))

	for _, userID := range []uint64{bidderA, bidderB} {
		participant, err := entity.NewAuctionParticipant(item.ID, userID, testDB.TimeProvider)
		require.NoError(t, err)
		require.NoError(t, participant.Book(testDB.TimeProvider))
		participant.MarkPaid(testDB.TimeProvider)
		require.NoError(t, uow.GetParticipantRepository(ctx).Create(ctx, participant))
	}

	for userID, balance := range map[uint64]int64{bidderA: 50000, bidderB: 100000} {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		_, err = holds.Credit(txCtx, userID, balance, 0)
		require.NoError(t, err)
		require.NoError(t, uow.Commit(txCtx))
	}

	// A bids 200.00 and has it earmarked
	_, err := biddingService.PlaceBid(ctx, item.ID, bidderA, "200.00")
	require.NoError(t, err)
	available, err := holds.AvailableBalance(ctx, bidderA)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), available)

	// B outbids with 250.00; A's hold is released
	_, err = biddingService.PlaceBid(ctx, item.ID, bidderB, "250.00")
	require.NoError(t, err)
	available, err = holds.AvailableBalance(ctx, bidderA)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), available)

	// Close the auction and settle
	item.EndsAt = now.Add(-time.Minute)
	item.UpdatedAt = testDB.TimeProvider.Now()
	require.NoError(t, uow.GetItemRepository(ctx).Update(ctx, item))

	done, err := settlementService.Settle(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, done)

	// The winner paid from the wallet and got an order
	winnerWallet, err := holds.GetOrCreateWallet(ctx, bidderB)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), winnerWallet.Balance())

	order, err := uow.GetOrderRepository(ctx).GetByItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, bidderB, order.BuyerID)
	assert.Equal(t, int64(25000), order.AmountInCents)
	assert.Equal(t, entity.OrderPaid, order.Status)

	// A second settlement is a no-op
	done, err = settlementService.Settle(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, done)

	// Two bids plus the settlement, all chained
	ok, _, err := ledgerService.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	count, err := ledgerService.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}
