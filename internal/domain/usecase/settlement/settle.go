package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// Settle performs the terminal settlement of an ended auction. Idempotent:
// the settled flag is re-checked under the item lock and a second call
// returns false without mutating anything. The item always reaches the
// settled state; when the winner's funds cannot be collected the payment
// falls back to the bank path or a pending manual payment, never aborting
// the terminal transition.
func (s *Service) Settle(ctx context.Context, itemID uint64) (bool, error) {
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

	itemRepo := s.uow.GetItemRepository(txCtx)
	item, err := itemRepo.GetByIDForUpdate(txCtx, itemID)
	if err != nil {
		return false, err
	}
	if item.IsSettled {
		return false, nil
	}
	now := s.timeProvider.Now()
	if !item.HasEnded(now) {
		return false, errs.ErrAuctionNotEnded
	}

	winner, err := s.uow.GetBidRepository(txCtx).GetLeader(txCtx, itemID)
	if err != nil {
		return false, err
	}

	if winner == nil {
		// No bids: just close the item
		item.IsSettled = true
		item.IsActive = false
		item.UpdatedAt = now
		if err := itemRepo.Update(txCtx, item); err != nil {
			return false, err
		}
		if _, err := s.ledger.Append(txCtx, map[string]any{
			"type":    "auction_closed",
			"item_id": itemID,
		}); err != nil {
			return false, err
		}
		if err := s.uow.Commit(txCtx); err != nil {
			return false, fmt.Errorf("failed to commit settlement: %w", err)
		}
		committed = true
		s.logger.Info("Auction closed without bids", map[string]any{"item_id": itemID})
		return true, nil
	}

	paidVia, payment, err := s.collectFromWinner(txCtx, item, winner)
	if err != nil {
		return false, err
	}

	order, err := entity.NewOrder(itemID, winner.BidderID, winner.AmountInCents, s.timeProvider)
	if err != nil {
		return false, err
	}
	if paidVia != entity.PaidViaBankPending {
		order.MarkPaid(s.timeProvider)
	}
	if err := s.uow.GetOrderRepository(txCtx).Create(txCtx, order); err != nil {
		return false, err
	}

	// Everyone else gets their money back
	if err := s.releaseLosingHolds(txCtx, itemID, winner.BidderID); err != nil {
		return false, err
	}

	item.IsSettled = true
	item.IsActive = false
	item.UpdatedAt = now
	if err := itemRepo.Update(txCtx, item); err != nil {
		return false, err
	}

	if _, err := s.ledger.Append(txCtx, map[string]any{
		"type":       "order_paid",
		"item_id":    itemID,
		"winner_id":  winner.BidderID,
		"amount":     winner.GetAmount(),
		"paid_via":   string(paidVia),
		"payment_id": payment.TransactionID,
	}); err != nil {
		return false, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return false, fmt.Errorf("failed to commit settlement: %w", err)
	}
	committed = true

	s.logger.Info("Auction settled", map[string]any{
		"item_id":   itemID,
		"winner_id": winner.BidderID,
		"amount":    winner.GetAmount(),
		"paid_via":  string(paidVia),
	})

	if err := s.notifier.PublishAuctionSettled(ctx, coreport.AuctionSettledEvent{
		ItemID:    itemID,
		WinnerID:  winner.BidderID,
		Amount:    winner.GetAmount(),
		PaidVia:   string(paidVia),
		SettledAt: now,
	}); err != nil {
		s.logger.Warn("Failed to publish settlement notification", map[string]any{
			"item_id": itemID,
			"error":   err.Error(),
		})
	}

	return true, nil
}

// collectFromWinner tries the payment paths in order: consume the wallet
// hold, simulate a bank auto-debit when consented, otherwise leave a pending
// manual payment. Each path records a Payment row.
func (s *Service) collectFromWinner(ctx context.Context, item *entity.AuctionItem, winner *entity.Bid) (entity.PaidVia, *entity.Payment, error) {
	payment, err := entity.NewPayment(item.ID, winner.BidderID, winner.AmountInCents, entity.PurposeOrder, OrderPaymentProvider, s.timeProvider)
	if err != nil {
		return "", nil, err
	}

	paidVia := entity.PaidViaWallet
	_, consumeErr := s.holds.Consume(ctx, winner.BidderID, item.ID)
	if consumeErr != nil {
		if !errors.Is(consumeErr, errs.ErrNoActiveHold) && !errors.Is(consumeErr, errs.ErrInsufficientWalletBalance) {
			return "", nil, consumeErr
		}

		// The hold is gone or underfunded; whatever remains of it must not
		// keep earmarking funds
		if err := s.holds.Release(ctx, winner.BidderID, item.ID); err != nil {
			return "", nil, err
		}

		wallet, err := s.holds.GetOrCreateWallet(ctx, winner.BidderID)
		if err != nil {
			return "", nil, err
		}
		if wallet.AutoDebitConsent {
			paidVia = entity.PaidViaBank
		} else {
			paidVia = entity.PaidViaBankPending
		}

		s.logger.Warn("Winner hold could not be consumed, falling back", map[string]any{
			"item_id":   item.ID,
			"winner_id": winner.BidderID,
			"reason":    consumeErr.Error(),
			"paid_via":  string(paidVia),
		})
	}

	payment.PaidVia = paidVia
	if paidVia != entity.PaidViaBankPending {
		payment.MarkProcessed(s.timeProvider)
	} else {
		// In flight until the manual bank transfer confirms or fails
		payment.MarkProcessing(s.timeProvider)
	}
	if err := s.uow.GetPaymentRepository(ctx).Create(ctx, payment); err != nil {
		return "", nil, err
	}
	return paidVia, payment, nil
}

// releaseLosingHolds releases every active hold on the item except the
// winner's
func (s *Service) releaseLosingHolds(ctx context.Context, itemID, winnerID uint64) error {
	holds, err := s.uow.GetHoldRepository(ctx).ListActiveByItem(ctx, itemID)
	if err != nil {
		return err
	}
	for _, hold := range holds {
		if hold.UserID == winnerID {
			continue
		}
		if err := s.holds.Release(ctx, hold.UserID, itemID); err != nil {
			return err
		}
	}
	return nil
}

// Sweep settles ended, unsettled auctions in ends_at order, up to the batch
// limit. Meant to run periodically from the worker loop. Returns the number
// of items settled.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	items, err := s.uow.GetItemRepository(ctx).ListEndedUnsettled(ctx, s.timeProvider.Now(), s.config.SweepBatchLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to list ended items: %w", err)
	}

	settled := 0
	for _, item := range items {
		done, err := s.Settle(ctx, item.ID)
		if err != nil {
			// Contention or a bad item must not stall the sweep
			s.logger.Error("Sweep settlement failed", map[string]any{
				"item_id": item.ID,
				"error":   err.Error(),
			})
			continue
		}
		if done {
			settled++
		}
	}
	return settled, nil
}
