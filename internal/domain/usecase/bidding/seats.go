package bidding

import (
	"context"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
)

// SeatPaymentProvider names the provider used for seat fee payments
const SeatPaymentProvider = "gateway"

// BookSeat reserves a seat in an auction by creating a pending seat-fee
// payment. The booking itself is completed when the payment's effects are
// applied; until then the seat is not counted as booked.
func (s *Service) BookSeat(ctx context.Context, itemID, userID uint64) (*entity.Payment, error) {
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
	if !item.IsActive || item.IsSettled || item.HasEnded(s.timeProvider.Now()) {
		return nil, errs.ErrBiddingClosed
	}
	if userID == item.OwnerID {
		return nil, errs.ErrOwnerCannotBid
	}

	participantRepo := s.uow.GetParticipantRepository(txCtx)
	participant, err := participantRepo.GetByItemAndUserForUpdate(txCtx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if participant != nil && participant.IsBooked {
		return nil, errs.ErrSeatAlreadyBooked
	}

	booked, err := participantRepo.CountBooked(txCtx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SeatLimit > 0 && booked >= item.SeatLimit {
		return nil, errs.ErrNoSeatsAvailable
	}

	if participant == nil {
		participant, err = entity.NewAuctionParticipant(itemID, userID, s.timeProvider)
		if err != nil {
			return nil, err
		}
		if err := participantRepo.Create(txCtx, participant); err != nil {
			return nil, err
		}
	}

	payment, err := entity.NewPayment(itemID, userID, s.config.SeatFeeInCents, entity.PurposeSeat, SeatPaymentProvider, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetPaymentRepository(txCtx).Create(txCtx, payment); err != nil {
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit seat booking: %w", err)
	}
	committed = true

	s.logger.Info("Seat fee payment created", map[string]any{
		"item_id":        itemID,
		"user_id":        userID,
		"payment_id":     payment.ID,
		"transaction_id": payment.TransactionID,
	})
	return payment, nil
}

// UnbookSeat releases a booked seat. Allowed only while the unbooking window
// is open; the seat fee is not refunded.
func (s *Service) UnbookSeat(ctx context.Context, itemID, userID uint64) error {
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

	participantRepo := s.uow.GetParticipantRepository(txCtx)
	participant, err := participantRepo.GetByItemAndUserForUpdate(txCtx, itemID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return errs.ErrSeatNotBooked
	}
	if err := participant.Unbook(s.timeProvider); err != nil {
		return err
	}
	if err := participantRepo.Update(txCtx, participant); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit seat unbooking: %w", err)
	}
	committed = true

	s.logger.Info("Seat unbooked", map[string]any{
		"item_id": itemID,
		"user_id": userID,
	})
	return nil
}

// VerifyCode checks a participant's booking code and stamps the verification
// time that gates access to the live call
func (s *Service) VerifyCode(ctx context.Context, itemID, userID uint64, code string) error {
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

	participantRepo := s.uow.GetParticipantRepository(txCtx)
	participant, err := participantRepo.GetByItemAndUserForUpdate(txCtx, itemID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return errs.ErrSeatNotBooked
	}
	if err := participant.VerifyCode(code, s.timeProvider); err != nil {
		return err
	}
	if err := participantRepo.Update(txCtx, participant); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit code verification: %w", err)
	}
	committed = true
	return nil
}

// PresencePing refreshes a participant's presence heartbeat. Penalties are
// assessed separately by the periodic sweep, never by the ping itself.
func (s *Service) PresencePing(ctx context.Context, itemID, userID uint64) error {
	participantRepo := s.uow.GetParticipantRepository(ctx)
	participant, err := participantRepo.GetByItemAndUser(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if participant == nil || !participant.IsBooked {
		return errs.ErrSeatNotBooked
	}

	participant.RecordPresence(s.timeProvider)
	return participantRepo.Update(ctx, participant)
}
