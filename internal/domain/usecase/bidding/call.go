package bidding

import (
	"context"
	"fmt"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
)

// StartPreview opens the preview phase for an auction. Owner-only. Every
// booked participant gets the preview timestamp stamped, which anchors
// their unbooking window.
func (s *Service) StartPreview(ctx context.Context, itemID, ownerID uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	item, err := s.uow.GetItemRepository(txCtx).GetByIDForUpdate(txCtx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return errs.ErrNotItemOwner
	}
	if !item.IsActive || item.IsSettled {
		return errs.ErrBiddingClosed
	}

	participantRepo := s.uow.GetParticipantRepository(txCtx)
	participants, err := participantRepo.ListBookedByItem(txCtx, itemID)
	if err != nil {
		return err
	}
	for _, participant := range participants {
		participant.StartPreview(s.timeProvider)
		if err := participantRepo.Update(txCtx, participant); err != nil {
			return err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit preview start: %w", err)
	}
	committed = true

	s.logger.Info("Preview started", map[string]any{
		"item_id":      itemID,
		"participants": len(participants),
	})
	return nil
}

// StartCall opens the live call for an auction. Owner-only. Participants can
// join once they have verified their booking code.
func (s *Service) StartCall(ctx context.Context, itemID, ownerID uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
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
		return err
	}
	if item.OwnerID != ownerID {
		return errs.ErrNotItemOwner
	}
	if !item.IsActive || item.IsSettled {
		return errs.ErrBiddingClosed
	}

	now := s.timeProvider.Now()
	item.CallStartedAt = &now
	item.UpdatedAt = now
	if err := itemRepo.Update(txCtx, item); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit call start: %w", err)
	}
	committed = true

	s.logger.Info("Live call started", map[string]any{
		"item_id": itemID,
	})
	return nil
}
