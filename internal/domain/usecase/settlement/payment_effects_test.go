package settlement

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

func (f *settlementFixture) pendingPayment(purpose entity.PaymentPurpose, itemID uint64, amountInCents int64) *entity.Payment {
	payment, _ := entity.NewPayment(itemID, 2, amountInCents, purpose, GatewayProvider, f.timeProvider)
	payment.ID = 7
	return payment
}

func TestApplyPaymentEffects(t *testing.T) {
	ctx := context.Background()

	t.Run("Processed payment is a no-op", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeRecharge, 0, 10000)
		payment.MarkProcessed(f.timeProvider)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)

		applied, err := f.service.ApplyPaymentEffects(ctx, 7)

		require.NoError(t, err)
		assert.False(t, applied)
		f.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Recharge credits the wallet", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeRecharge, 0, 10000)
		userWallet := f.walletWithBalance(2, 5000)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(userWallet, nil)
		f.walletRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(2)).Return(userWallet, nil)
		f.walletRepo.On("Update", mock.Anything, userWallet).Return(nil)
		f.auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.WalletTransaction) bool {
			return tx.Kind == entity.KindCredit && tx.AmountInCents == 10000 && tx.PaymentID == 7
		})).Return(nil)
		f.paymentRepo.On("Update", mock.Anything, payment).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		applied, err := f.service.ApplyPaymentEffects(ctx, 7)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, int64(15000), userWallet.Balance())
		assert.True(t, payment.IsProcessed())
		f.auditRepo.AssertExpectations(t)
	})

	t.Run("Seat fee books the participant", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeSeat, 1, 500)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)
		f.participantRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.participantRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.AuctionParticipant) bool {
			return p.IsBooked && p.Paid && p.BookingCode != ""
		})).Return(nil)
		f.paymentRepo.On("Update", mock.Anything, payment).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		applied, err := f.service.ApplyPaymentEffects(ctx, 7)

		require.NoError(t, err)
		assert.True(t, applied)
		f.participantRepo.AssertExpectations(t)
	})

	t.Run("Penalty payment clears the flag", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposePenalty, 1, 20000)
		participant, err := entity.NewAuctionParticipant(1, 2, f.timeProvider)
		require.NoError(t, err)
		participant.PenaltyDue = true

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.participantRepo.On("GetByItemAndUserForUpdate", mock.Anything, uint64(1), uint64(2)).Return(participant, nil)
		f.participantRepo.On("Update", mock.Anything, participant).Return(nil)
		f.paymentRepo.On("Update", mock.Anything, payment).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		applied, err := f.service.ApplyPaymentEffects(ctx, 7)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.False(t, participant.PenaltyDue)
	})

	t.Run("Manual order payment marks the order paid via bank", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeOrder, 1, 15000)
		order, err := entity.NewOrder(1, 2, 15000, f.timeProvider)
		require.NoError(t, err)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.orderRepo.On("GetByItem", mock.Anything, uint64(1)).Return(order, nil)
		f.orderRepo.On("Update", mock.Anything, order).Return(nil)
		f.paymentRepo.On("Update", mock.Anything, payment).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		applied, err := f.service.ApplyPaymentEffects(ctx, 7)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, entity.OrderPaid, order.Status)
		assert.Equal(t, entity.PaidViaBank, payment.PaidVia)
	})

	t.Run("Missing order surfaces an error", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeOrder, 1, 15000)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.orderRepo.On("GetByItem", mock.Anything, uint64(1)).Return(nil, nil)

		_, err := f.service.ApplyPaymentEffects(ctx, 7)

		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
		assert.False(t, payment.IsProcessed())
	})

	t.Run("Buy-now closes the item and releases every hold", func(t *testing.T) {
		f := newSettlementFixture()
		item := f.endedItem()
		item.EndsAt = testFixedTime.Add(time.Hour)
		item.BuyNowPriceInCents = 50000
		payment := f.pendingPayment(entity.PurposeBuyNow, 1, 50000)
		buyerHold := &entity.WalletHold{UserID: 2, ItemID: 1, AmountInCents: 12000, Status: entity.HoldActive}

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)
		f.orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
			return o.ItemID == 1 && o.BuyerID == 2 && o.AmountInCents == 50000 && o.Status == entity.OrderPaid
		})).Return(nil)
		f.holdRepo.On("ListActiveByItem", mock.Anything, uint64(1)).Return([]*entity.WalletHold{buyerHold}, nil)
		f.holdRepo.On("GetActiveForUpdate", mock.Anything, uint64(2), uint64(1)).Return(buyerHold, nil)
		f.holdRepo.On("Update", mock.Anything, buyerHold).Return(nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(2)).Return(f.walletWithBalance(2, 20000), nil)
		f.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.itemRepo.On("Update", mock.Anything, item).Return(nil)
		f.paymentRepo.On("Update", mock.Anything, payment).Return(nil)
		f.ledgerRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		f.ledgerRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		applied, err := f.service.ApplyPaymentEffects(ctx, 7)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, item.IsSettled)
		assert.False(t, item.IsActive)
		assert.Equal(t, entity.HoldReleased, buyerHold.Status)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("Buy-now on a settled item fails", func(t *testing.T) {
		f := newSettlementFixture()
		item := f.endedItem()
		item.IsSettled = true
		payment := f.pendingPayment(entity.PurposeBuyNow, 1, 50000)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.itemRepo.On("GetByIDForUpdate", mock.Anything, uint64(1)).Return(item, nil)

		_, err := f.service.ApplyPaymentEffects(ctx, 7)

		assert.ErrorIs(t, err, errs.ErrAlreadySettled)
		f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRecharge(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending recharge payment", func(t *testing.T) {
		f := newSettlementFixture()
		f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Purpose == entity.PurposeRecharge && p.ItemID == 0 && p.BuyerID == 2 &&
				p.Provider == GatewayProvider && p.Status == entity.PaymentPending
		})).Return(nil)

		payment, err := f.service.Recharge(ctx, 2, "100.00")

		require.NoError(t, err)
		assert.Equal(t, "100.00", payment.GetAmount())
		assert.NotEmpty(t, payment.TransactionID)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("Malformed amount is rejected", func(t *testing.T) {
		f := newSettlementFixture()

		_, err := f.service.Recharge(ctx, 2, "abc")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBuyNow(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending payment at the buy-now price", func(t *testing.T) {
		f := newSettlementFixture()
		item := f.endedItem()
		item.EndsAt = testFixedTime.Add(time.Hour)
		item.BuyNowPriceInCents = 50000

		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Purpose == entity.PurposeBuyNow && p.AmountInCents == 50000 && p.BuyerID == 2
		})).Return(nil)

		payment, err := f.service.BuyNow(ctx, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentPending, payment.Status)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("No buy-now price configured", func(t *testing.T) {
		f := newSettlementFixture()
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(f.endedItem(), nil)

		_, err := f.service.BuyNow(ctx, 1, 2)

		assert.ErrorIs(t, err, errs.ErrBuyNowUnavailable)
	})

	t.Run("Owner cannot buy their own item", func(t *testing.T) {
		f := newSettlementFixture()
		item := f.endedItem()
		item.BuyNowPriceInCents = 50000
		f.itemRepo.On("GetByID", mock.Anything, uint64(1)).Return(item, nil)

		_, err := f.service.BuyNow(ctx, 1, 9)

		assert.ErrorIs(t, err, errs.ErrOwnerCannotBid)
	})
}

func TestFailPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending payment is marked failed", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeRecharge, 0, 10000)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)
		f.paymentRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.ID == 7 && p.Status == entity.PaymentFailed
		})).Return(nil)

		failed, err := f.service.FailPayment(ctx, 7)

		require.NoError(t, err)
		assert.True(t, failed)
		assert.Equal(t, entity.PaymentFailed, payment.Status)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("Processed payment keeps its succeeded state", func(t *testing.T) {
		f := newSettlementFixture()
		payment := f.pendingPayment(entity.PurposeRecharge, 0, 10000)
		payment.MarkProcessed(f.timeProvider)

		f.paymentRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(payment, nil)

		failed, err := f.service.FailPayment(ctx, 7)

		require.NoError(t, err)
		assert.False(t, failed)
		assert.Equal(t, entity.PaymentSucceeded, payment.Status)
		f.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
