package bidding

import (
	"context"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// PenaltyPaymentProvider names the provider used for penalty payments
const PenaltyPaymentProvider = "gateway"

// PenaltySweep scans running auctions for leaders who have gone offline and
// assesses a penalty: a pending penalty payment, deactivation of their bids
// and release of their hold. Meant to run periodically from the worker loop.
// Returns the number of penalties assessed.
func (s *Service) PenaltySweep(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	items, err := s.uow.GetItemRepository(ctx).ListActive(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list active items: %w", err)
	}

	assessed := 0
	for _, item := range items {
		flagged, err := s.assessOfflineLeader(ctx, item.ID)
		if err != nil {
			// One bad item must not stall the sweep
			s.logger.Error("Penalty assessment failed", map[string]any{
				"item_id": item.ID,
				"error":   err.Error(),
			})
			continue
		}
		if flagged {
			assessed++
		}
	}
	return assessed, nil
}

// assessOfflineLeader flags the current leader of one item if they are
// offline. All state checks are redone under the item lock.
func (s *Service) assessOfflineLeader(ctx context.Context, itemID uint64) (bool, error) {
	// Cheap pre-check without locks
	leader, err := s.uow.GetBidRepository(ctx).GetLeader(ctx, itemID)
	if err != nil || leader == nil {
		return false, err
	}
	participant, err := s.uow.GetParticipantRepository(ctx).GetByItemAndUser(ctx, itemID, leader.BidderID)
	if err != nil {
		return false, err
	}
	threshold := s.config.OfflineThreshold.Std()
	if participant == nil || participant.PenaltyDue || !participant.IsOffline(s.timeProvider.Now(), threshold) {
		return false, nil
	}

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

	item, err := s.uow.GetItemRepository(txCtx).GetByIDForUpdate(txCtx, itemID)
	if err != nil {
		return false, err
	}
	if !item.IsActive || item.IsSettled {
		return false, nil
	}

	bidRepo := s.uow.GetBidRepository(txCtx)
	leader, err = bidRepo.GetLeader(txCtx, itemID)
	if err != nil || leader == nil {
		return false, err
	}

	participantRepo := s.uow.GetParticipantRepository(txCtx)
	participant, err = participantRepo.GetByItemAndUserForUpdate(txCtx, itemID, leader.BidderID)
	if err != nil {
		return false, err
	}
	now := s.timeProvider.Now()
	if participant == nil || participant.PenaltyDue || !participant.IsOffline(now, threshold) {
		return false, nil
	}

	payment, err := entity.NewPayment(itemID, leader.BidderID, s.config.PenaltyInCents, entity.PurposePenalty, PenaltyPaymentProvider, s.timeProvider)
	if err != nil {
		return false, err
	}
	if err := s.uow.GetPaymentRepository(txCtx).Create(txCtx, payment); err != nil {
		return false, err
	}

	participant.AssessPenalty(s.timeProvider)
	if err := participantRepo.Update(txCtx, participant); err != nil {
		return false, err
	}

	if err := bidRepo.DeactivateByBidder(txCtx, itemID, leader.BidderID); err != nil {
		return false, err
	}
	if err := s.holds.Release(txCtx, leader.BidderID, itemID); err != nil {
		return false, err
	}

	// The next-ranked active bid inherits the lead once the commit lands
	remaining, err := bidRepo.ListActiveByItem(txCtx, itemID)
	if err != nil {
		return false, err
	}
	var successor *entity.Bid
	for _, b := range remaining {
		if b.Outranks(successor) {
			successor = b
		}
	}
	var successorID uint64
	if successor != nil {
		successorID = successor.BidderID
	}

	if _, err := s.ledger.Append(txCtx, map[string]any{
		"type":       "penalty_assessed",
		"item_id":    itemID,
		"user_id":    leader.BidderID,
		"amount":     payment.GetAmount(),
		"payment_id": payment.TransactionID,
	}); err != nil {
		return false, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return false, fmt.Errorf("failed to commit penalty assessment: %w", err)
	}
	committed = true

	s.logger.Warn("Offline leader penalized", map[string]any{
		"item_id":       itemID,
		"user_id":       leader.BidderID,
		"amount":        payment.GetAmount(),
		"new_leader_id": successorID,
	})

	if err := s.notifier.PublishPenaltyAssessed(ctx, coreport.PenaltyAssessedEvent{
		ItemID:     itemID,
		UserID:     leader.BidderID,
		Amount:     payment.GetAmount(),
		AssessedAt: now,
	}); err != nil {
		s.logger.Warn("Failed to publish penalty notification", map[string]any{
			"item_id": itemID,
			"error":   err.Error(),
		})
	}

	return true, nil
}
