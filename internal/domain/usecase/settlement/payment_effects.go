package settlement

import (
	"context"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
)

// ApplyPaymentEffects applies a payment's business effects exactly once.
// The payment row is locked and its processed_at marker re-checked under the
// lock; a second call returns false without mutating anything. All provider
// confirmation paths (gateway callback, bank transfer, on-chain oracle) feed
// into this single method.
func (s *Service) ApplyPaymentEffects(ctx context.Context, paymentID uint64) (bool, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	paymentRepo := s.uow.GetPaymentRepository(txCtx)
	payment, err := paymentRepo.GetByIDForUpdate(txCtx, paymentID)
	if err != nil {
		return false, err
	}
	if payment.IsProcessed() {
		return false, nil
	}

	switch payment.Purpose {
	case entity.PurposeRecharge:
		if _, err := s.holds.Credit(txCtx, payment.BuyerID, payment.AmountInCents, payment.ID); err != nil {
			return false, err
		}

	case entity.PurposeSeat:
		if err := s.applySeatEffects(txCtx, payment); err != nil {
			return false, err
		}

	case entity.PurposePenalty:
		if err := s.applyPenaltyEffects(txCtx, payment); err != nil {
			return false, err
		}

	case entity.PurposeOrder:
		if err := s.applyOrderEffects(txCtx, payment); err != nil {
			return false, err
		}

	case entity.PurposeBuyNow:
		if err := s.applyBuyNowEffects(txCtx, payment); err != nil {
			return false, err
		}

	default:
		return false, errs.ErrInvalidRequest
	}

	payment.MarkProcessed(s.timeProvider)
	if err := paymentRepo.Update(txCtx, payment); err != nil {
		return false, err
	}

	if _, err := s.ledger.Append(txCtx, map[string]any{
		"type":       "payment",
		"purpose":    string(payment.Purpose),
		"payment_id": payment.TransactionID,
		"user_id":    payment.BuyerID,
		"item_id":    payment.ItemID,
		"amount":     payment.GetAmount(),
	}); err != nil {
		return false, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return false, fmt.Errorf("failed to commit payment effects: %w", err)
	}
	committed = true

	s.logger.Info("Payment effects applied", map[string]any{
		"payment_id": payment.ID,
		"purpose":    string(payment.Purpose),
		"user_id":    payment.BuyerID,
		"amount":     payment.GetAmount(),
	})
	return true, nil
}

// applySeatEffects completes a seat booking: mark the participant booked
// with a fresh code and record the fee
func (s *Service) applySeatEffects(ctx context.Context, payment *entity.Payment) error {
	participantRepo := s.uow.GetParticipantRepository(ctx)
	participant, err := participantRepo.GetByItemAndUserForUpdate(ctx, payment.ItemID, payment.BuyerID)
	if err != nil {
		return err
	}
	if participant == nil {
		participant, err = entity.NewAuctionParticipant(payment.ItemID, payment.BuyerID, s.timeProvider)
		if err != nil {
			return err
		}
		if err := participantRepo.Create(ctx, participant); err != nil {
			return err
		}
	}

	if !participant.IsBooked {
		if err := participant.Book(s.timeProvider); err != nil {
			return err
		}
	}
	participant.MarkPaid(s.timeProvider)
	if err := participantRepo.Update(ctx, participant); err != nil {
		return err
	}

	_, err = s.ledger.Append(ctx, map[string]any{
		"type":    "seat_booking",
		"item_id": payment.ItemID,
		"user_id": payment.BuyerID,
		"amount":  payment.GetAmount(),
	})
	return err
}

// applyPenaltyEffects clears the payer's outstanding penalty flag
func (s *Service) applyPenaltyEffects(ctx context.Context, payment *entity.Payment) error {
	participantRepo := s.uow.GetParticipantRepository(ctx)
	participant, err := participantRepo.GetByItemAndUserForUpdate(ctx, payment.ItemID, payment.BuyerID)
	if err != nil {
		return err
	}
	if participant == nil {
		return errs.ErrSeatNotBooked
	}
	participant.ClearPenalty(s.timeProvider)
	return participantRepo.Update(ctx, participant)
}

// applyOrderEffects completes a pending manual settlement payment: the order
// created at settlement time transitions to paid via the bank path
func (s *Service) applyOrderEffects(ctx context.Context, payment *entity.Payment) error {
	orderRepo := s.uow.GetOrderRepository(ctx)
	order, err := orderRepo.GetByItem(ctx, payment.ItemID)
	if err != nil {
		return err
	}
	if order == nil {
		return errs.ErrOrderNotFound
	}
	if order.Status == entity.OrderPaid {
		return nil
	}
	order.MarkPaid(s.timeProvider)
	if err := orderRepo.Update(ctx, order); err != nil {
		return err
	}

	payment.PaidVia = entity.PaidViaBank
	return nil
}

// applyBuyNowEffects closes the item with a paid order at the buy-now price
// and releases all outstanding holds
func (s *Service) applyBuyNowEffects(ctx context.Context, payment *entity.Payment) error {
	itemRepo := s.uow.GetItemRepository(ctx)
	item, err := itemRepo.GetByIDForUpdate(ctx, payment.ItemID)
	if err != nil {
		return err
	}
	if item.IsSettled {
		return errs.ErrAlreadySettled
	}

	order, err := entity.NewOrder(item.ID, payment.BuyerID, payment.AmountInCents, s.timeProvider)
	if err != nil {
		return err
	}
	order.MarkPaid(s.timeProvider)
	if err := s.uow.GetOrderRepository(ctx).Create(ctx, order); err != nil {
		return err
	}

	// Release every hold, the buyer's included; the item is leaving auction
	if err := s.releaseLosingHolds(ctx, item.ID, 0); err != nil {
		return err
	}

	item.IsSettled = true
	item.IsActive = false
	item.UpdatedAt = s.timeProvider.Now()
	return itemRepo.Update(ctx, item)
}

// FailPayment records a provider-reported failure for a payment whose effects
// have not been applied. A processed payment keeps its succeeded state; late
// or duplicate failure callbacks return false without mutating anything.
func (s *Service) FailPayment(ctx context.Context, paymentID uint64) (bool, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	paymentRepo := s.uow.GetPaymentRepository(txCtx)
	payment, err := paymentRepo.GetByIDForUpdate(txCtx, paymentID)
	if err != nil {
		return false, err
	}
	if payment.IsProcessed() {
		return false, nil
	}

	payment.MarkFailed(s.timeProvider)
	if err := paymentRepo.Update(txCtx, payment); err != nil {
		return false, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return false, fmt.Errorf("failed to commit payment failure: %w", err)
	}
	committed = true

	s.logger.Warn("Payment marked failed", map[string]any{
		"payment_id": payment.ID,
		"purpose":    string(payment.Purpose),
		"user_id":    payment.BuyerID,
	})
	return true, nil
}

// Recharge creates a pending wallet top-up payment for the provider flow.
// The wallet is credited when the provider confirms and effects are applied.
func (s *Service) Recharge(ctx context.Context, userID uint64, amount string) (*entity.Payment, error) {
	amountInCents, err := entity.ValidateAndConvertAmount(amount)
	if err != nil {
		return nil, err
	}

	payment, err := entity.NewPayment(0, userID, amountInCents, entity.PurposeRecharge, GatewayProvider, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetPaymentRepository(ctx).Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Recharge payment created", map[string]any{
		"user_id":        userID,
		"amount":         payment.GetAmount(),
		"transaction_id": payment.TransactionID,
	})
	return payment, nil
}

// BuyNow creates a pending buy-now payment at the item's buy-now price
func (s *Service) BuyNow(ctx context.Context, itemID, userID uint64) (*entity.Payment, error) {
	item, err := s.uow.GetItemRepository(ctx).GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsBuyNowAvailable() {
		return nil, errs.ErrBuyNowUnavailable
	}
	if userID == item.OwnerID {
		return nil, errs.ErrOwnerCannotBid
	}

	payment, err := entity.NewPayment(itemID, userID, item.BuyNowPriceInCents, entity.PurposeBuyNow, GatewayProvider, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetPaymentRepository(ctx).Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Buy-now payment created", map[string]any{
		"item_id":        itemID,
		"user_id":        userID,
		"amount":         payment.GetAmount(),
		"transaction_id": payment.TransactionID,
	})
	return payment, nil
}
