package bidding

import (
	"context"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// PlaceBid places a bid on an auction item. Cheap advisory checks run first
// without any locks; the binding decision happens inside a single transaction
// that locks the item row, re-reads the leader and re-validates the minimum.
// The funds check is enforced by the hold manager under the wallet lock.
func (s *Service) PlaceBid(ctx context.Context, itemID, bidderID uint64, amount string) (*entity.Bid, error) {
	amountInCents, err := entity.ValidateAndConvertAmount(amount)
	if err != nil {
		return nil, err
	}

	// Advisory pre-checks: reject obviously invalid bids before taking locks.
	// Everything decision-critical is re-validated under the item lock.
	if err := s.preValidateBid(ctx, itemID, bidderID, amountInCents); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	item, err := s.uow.GetItemRepository(txCtx).GetByIDForUpdate(txCtx, itemID)
	if err != nil {
		return nil, err
	}

	// The world may have changed while we waited for the lock
	if !item.CanAcceptBids(s.timeProvider.Now(), s.config.MarketOpenHour, s.config.MarketCloseHour) {
		return nil, errs.ErrBiddingClosed
	}

	// Seat and penalty state too: the penalty sweep and unbooking run
	// concurrently and may have landed between the pre-check and this lock
	participantRepo := s.uow.GetParticipantRepository(txCtx)
	participant, err := participantRepo.GetByItemAndUser(txCtx, itemID, bidderID)
	if err != nil {
		return nil, err
	}
	if participant == nil || !participant.IsBooked {
		return nil, errs.ErrSeatNotBooked
	}
	if participant.PenaltyDue {
		return nil, errs.ErrPenaltyDue
	}

	booked, err := participantRepo.CountBooked(txCtx, itemID)
	if err != nil {
		return nil, err
	}
	if booked < s.config.MinimumParticipants {
		return nil, errs.ErrInsufficientParticipants
	}

	bidRepo := s.uow.GetBidRepository(txCtx)
	leader, err := bidRepo.GetLeader(txCtx, itemID)
	if err != nil {
		return nil, err
	}

	var leaderAmount int64
	if leader != nil {
		leaderAmount = leader.AmountInCents
	}
	minimum := item.MinimumNextBid(leaderAmount, s.config.MinimumIncrementInCents)
	if amountInCents < minimum {
		return nil, errs.NewBidTooLowError(
			itemID, bidderID,
			entity.AmountInCentsToString(amountInCents),
			entity.AmountInCentsToString(minimum),
		)
	}
	if amountInCents > item.MaximumAllowedBid(s.config.MaxBidMultiplier) {
		return nil, errs.ErrBidUnreasonablyHigh
	}

	// Wallet lock comes after the item lock, always in that order
	if _, err := s.holds.ReserveOrRaise(txCtx, bidderID, itemID, amountInCents); err != nil {
		return nil, err
	}

	// The previous leader is no longer on the hook for this item
	if leader != nil && leader.BidderID != bidderID {
		if err := s.holds.Release(txCtx, leader.BidderID, itemID); err != nil {
			return nil, err
		}
	}

	bid, err := entity.NewBid(itemID, bidderID, amountInCents, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := bidRepo.Create(txCtx, bid); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Append(txCtx, map[string]any{
		"type":      "bid_placed",
		"item_id":   itemID,
		"bidder_id": bidderID,
		"amount":    bid.GetAmount(),
		"tx_id":     bid.TxID,
	}); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit bid transaction: %w", err)
	}
	committed = true

	s.logger.Info("Bid placed", map[string]any{
		"item_id":   itemID,
		"bidder_id": bidderID,
		"amount":    bid.GetAmount(),
		"tx_id":     bid.TxID,
	})

	// Best-effort notification; a broker outage must not fail the bid
	if err := s.notifier.PublishBidPlaced(ctx, coreport.BidPlacedEvent{
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   bid.GetAmount(),
		TxID:     bid.TxID,
		PlacedAt: bid.CreatedAt,
	}); err != nil {
		s.logger.Warn("Failed to publish bid notification", map[string]any{
			"item_id": itemID,
			"tx_id":   bid.TxID,
			"error":   err.Error(),
		})
	}

	return bid, nil
}

// GetBid retrieves a bid by its transaction ID
func (s *Service) GetBid(ctx context.Context, txID string) (*entity.Bid, error) {
	if txID == "" {
		return nil, errs.ErrInvalidRequest
	}
	return s.uow.GetBidRepository(ctx).GetByTxID(ctx, txID)
}

// preValidateBid runs the lock-free advisory checks
func (s *Service) preValidateBid(ctx context.Context, itemID, bidderID uint64, amountInCents int64) error {
	item, err := s.uow.GetItemRepository(ctx).GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if err := item.ValidateBidder(bidderID); err != nil {
		return err
	}
	if !item.CanAcceptBids(s.timeProvider.Now(), s.config.MarketOpenHour, s.config.MarketCloseHour) {
		return errs.ErrBiddingClosed
	}
	if amountInCents > item.MaximumAllowedBid(s.config.MaxBidMultiplier) {
		return errs.ErrBidUnreasonablyHigh
	}

	participantRepo := s.uow.GetParticipantRepository(ctx)
	participant, err := participantRepo.GetByItemAndUser(ctx, itemID, bidderID)
	if err != nil {
		return err
	}
	if participant == nil || !participant.IsBooked {
		return errs.ErrSeatNotBooked
	}
	if participant.PenaltyDue {
		return errs.ErrPenaltyDue
	}

	booked, err := participantRepo.CountBooked(ctx, itemID)
	if err != nil {
		return err
	}
	if booked < s.config.MinimumParticipants {
		return errs.ErrInsufficientParticipants
	}

	leader, err := s.uow.GetBidRepository(ctx).GetLeader(ctx, itemID)
	if err != nil {
		return err
	}
	var leaderAmount int64
	if leader != nil {
		leaderAmount = leader.AmountInCents
	}
	minimum := item.MinimumNextBid(leaderAmount, s.config.MinimumIncrementInCents)
	if amountInCents < minimum {
		return errs.NewBidTooLowError(
			itemID, bidderID,
			entity.AmountInCentsToString(amountInCents),
			entity.AmountInCentsToString(minimum),
		)
	}

	// Advisory funds check; the binding one happens under the wallet lock
	available, err := s.holds.AvailableBalance(ctx, bidderID)
	if err != nil {
		return err
	}
	hold, err := s.uow.GetHoldRepository(ctx).GetActive(ctx, bidderID, itemID)
	if err != nil {
		return err
	}
	var existing int64
	if hold != nil {
		existing = hold.AmountInCents
	}
	if available+existing < amountInCents {
		return errs.NewInsufficientFundsError(
			bidderID, itemID,
			entity.AmountInCentsToString(amountInCents),
			entity.AmountInCentsToString(available+existing),
		)
	}

	return nil
}
