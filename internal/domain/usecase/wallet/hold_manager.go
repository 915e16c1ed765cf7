package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/domain/port/persistence"
)

// HoldManager owns all wallet balance and hold mutations. Mutating methods
// must run inside an ambient unit-of-work transaction; they lock the wallet
// row first and the hold row second, and re-validate after locking.
type HoldManager struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewHoldManager creates a new hold manager
func NewHoldManager(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *HoldManager {
	return &HoldManager{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetOrCreateWallet returns the user's wallet, creating an empty one on
// first touch. A lost creation race falls back to re-reading the winner's row.
func (m *HoldManager) GetOrCreateWallet(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	repo := m.uow.GetWalletRepository(ctx)
	wallet, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	wallet, err = entity.NewWallet(userID, m.timeProvider)
	if err != nil {
		return nil, err
	}
	if createErr := repo.Create(ctx, wallet); createErr != nil {
		if errors.Is(createErr, errs.ErrConstraintViolation) {
			return repo.GetByUserID(ctx, userID)
		}
		return nil, createErr
	}

	m.logger.Info("Wallet created", map[string]any{"user_id": userID})
	return wallet, nil
}

// AvailableBalance returns wallet balance minus the total of the user's
// active holds, floored at zero
func (m *HoldManager) AvailableBalance(ctx context.Context, userID uint64) (int64, error) {
	wallet, err := m.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return 0, err
	}

	activeTotal, err := m.uow.GetHoldRepository(ctx).SumActiveByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum active holds: %w", err)
	}

	return wallet.AvailableBalance(activeTotal), nil
}

// ReserveOrRaise ensures an active hold of at least amountInCents exists for
// the (user, item) pair. Holds only grow; a target at or below the existing
// hold is a no-op. The freshly raised delta is checked against the available
// balance under the wallet lock.
func (m *HoldManager) ReserveOrRaise(ctx context.Context, userID, itemID uint64, amountInCents int64) (*entity.WalletHold, error) {
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	walletRepo := m.uow.GetWalletRepository(ctx)
	holdRepo := m.uow.GetHoldRepository(ctx)

	if _, err := m.GetOrCreateWallet(ctx, userID); err != nil {
		return nil, err
	}
	wallet, err := walletRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	hold, err := holdRepo.GetActiveForUpdate(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	var existing int64
	if hold != nil {
		existing = hold.AmountInCents
	}
	if amountInCents <= existing {
		return hold, nil
	}

	activeTotal, err := holdRepo.SumActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum active holds: %w", err)
	}

	// Available funds for this item exclude the hold being raised
	availableForItem := wallet.Balance() - (activeTotal - existing)
	if availableForItem < amountInCents {
		if availableForItem < 0 {
			availableForItem = 0
		}
		return nil, errs.NewInsufficientFundsError(
			userID, itemID,
			entity.AmountInCentsToString(amountInCents),
			entity.AmountInCentsToString(availableForItem),
		)
	}

	delta := amountInCents - existing
	if hold == nil {
		hold, err = entity.NewWalletHold(userID, itemID, amountInCents, m.timeProvider)
		if err != nil {
			return nil, err
		}
		if err := holdRepo.Create(ctx, hold); err != nil {
			return nil, err
		}
	} else {
		if _, err := hold.Raise(amountInCents, m.timeProvider); err != nil {
			return nil, err
		}
		if err := holdRepo.Update(ctx, hold); err != nil {
			return nil, err
		}
	}

	if err := m.recordAudit(ctx, userID, itemID, 0, entity.KindHoldReserve, delta, wallet.Balance()); err != nil {
		return nil, err
	}

	m.logger.Debug("Hold reserved", map[string]any{
		"user_id": userID,
		"item_id": itemID,
		"amount":  hold.GetAmount(),
	})
	return hold, nil
}

// Release transitions the pair's active hold to released. A missing hold is
// a no-op, not an error; release must be safe to call for non-leaders.
func (m *HoldManager) Release(ctx context.Context, userID, itemID uint64) error {
	holdRepo := m.uow.GetHoldRepository(ctx)

	hold, err := holdRepo.GetActiveForUpdate(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if hold == nil {
		return nil
	}

	if err := hold.Release(m.timeProvider); err != nil {
		return err
	}
	if err := holdRepo.Update(ctx, hold); err != nil {
		return err
	}

	wallet, err := m.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return err
	}
	if err := m.recordAudit(ctx, userID, itemID, 0, entity.KindHoldRelease, hold.AmountInCents, wallet.Balance()); err != nil {
		return err
	}

	m.logger.Debug("Hold released", map[string]any{
		"user_id": userID,
		"item_id": itemID,
		"amount":  hold.GetAmount(),
	})
	return nil
}

// Consume debits the wallet by the pair's active hold amount and marks the
// hold consumed. Used by settlement to collect the winning amount.
func (m *HoldManager) Consume(ctx context.Context, userID, itemID uint64) (*entity.WalletHold, error) {
	walletRepo := m.uow.GetWalletRepository(ctx)
	holdRepo := m.uow.GetHoldRepository(ctx)

	wallet, err := walletRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNoActiveHold
		}
		return nil, err
	}

	hold, err := holdRepo.GetActiveForUpdate(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, errs.ErrNoActiveHold
	}

	if err := wallet.Debit(hold.AmountInCents, m.timeProvider); err != nil {
		return nil, err
	}
	if err := hold.Consume(m.timeProvider); err != nil {
		return nil, err
	}

	if err := walletRepo.Update(ctx, wallet); err != nil {
		return nil, err
	}
	if err := holdRepo.Update(ctx, hold); err != nil {
		return nil, err
	}

	if err := m.recordAudit(ctx, userID, itemID, 0, entity.KindHoldConsume, hold.AmountInCents, wallet.Balance()); err != nil {
		return nil, err
	}

	m.logger.Info("Hold consumed", map[string]any{
		"user_id": userID,
		"item_id": itemID,
		"amount":  hold.GetAmount(),
	})
	return hold, nil
}

// Credit adds funds to the wallet under the wallet lock and records a credit
// audit row linked to the payment that produced it
func (m *HoldManager) Credit(ctx context.Context, userID uint64, amountInCents int64, paymentID uint64) (*entity.Wallet, error) {
	walletRepo := m.uow.GetWalletRepository(ctx)

	if _, err := m.GetOrCreateWallet(ctx, userID); err != nil {
		return nil, err
	}
	wallet, err := walletRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := wallet.Credit(amountInCents, m.timeProvider); err != nil {
		return nil, err
	}
	if err := walletRepo.Update(ctx, wallet); err != nil {
		return nil, err
	}

	if err := m.recordAudit(ctx, userID, 0, paymentID, entity.KindCredit, amountInCents, wallet.Balance()); err != nil {
		return nil, err
	}

	m.logger.Info("Wallet credited", map[string]any{
		"user_id": userID,
		"amount":  entity.AmountInCentsToString(amountInCents),
		"balance": wallet.GetBalance(),
	})
	return wallet, nil
}

// Debit removes funds from the wallet under the wallet lock and records a
// debit audit row
func (m *HoldManager) Debit(ctx context.Context, userID uint64, amountInCents int64, itemID, paymentID uint64) (*entity.Wallet, error) {
	walletRepo := m.uow.GetWalletRepository(ctx)

	wallet, err := walletRepo.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrInsufficientWalletBalance
		}
		return nil, err
	}

	if err := wallet.Debit(amountInCents, m.timeProvider); err != nil {
		return nil, err
	}
	if err := walletRepo.Update(ctx, wallet); err != nil {
		return nil, err
	}

	if err := m.recordAudit(ctx, userID, itemID, paymentID, entity.KindDebit, amountInCents, wallet.Balance()); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (m *HoldManager) recordAudit(
	ctx context.Context,
	userID, itemID, paymentID uint64,
	kind entity.TransactionKind,
	amountInCents, balanceAfter int64,
) error {
	audit, err := entity.NewWalletTransaction(userID, kind, amountInCents, balanceAfter, m.timeProvider)
	if err != nil {
		return err
	}
	if itemID != 0 {
		audit.WithItem(itemID)
	}
	if paymentID != 0 {
		audit.WithPayment(paymentID)
	}
	if err := m.uow.GetWalletTransactionRepository(ctx).Create(ctx, audit); err != nil {
		return fmt.Errorf("failed to record wallet audit row: %w", err)
	}
	return nil
}
