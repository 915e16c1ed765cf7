package persistence

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// HoldRepository defines methods to interact with wallet hold data
type HoldRepository interface {
	// GetActive returns the active hold for a (user, item) pair, or nil
	// without error when there is none. The partial unique index guarantees
	// at most one.
	GetActive(ctx context.Context, userID, itemID uint64) (*entity.WalletHold, error)

	// GetActiveForUpdate is GetActive with a row lock. Must be called inside
	// a transaction.
	//
	// Possible errors:
	// - ErrRowLocked: If the lock wait times out
	// - ErrDatabaseConnection: If database connection fails
	GetActiveForUpdate(ctx context.Context, userID, itemID uint64) (*entity.WalletHold, error)

	// Create saves a new hold
	//
	// Possible errors:
	// - ErrDuplicateHold: If an active hold already exists for the pair
	//   (partial unique index violation, retryable contention)
	Create(ctx context.Context, hold *entity.WalletHold) error

	// Update persists amount and status changes
	Update(ctx context.Context, hold *entity.WalletHold) error

	// SumActiveByUser returns the total of a user's active holds in cents
	SumActiveByUser(ctx context.Context, userID uint64) (int64, error)

	// ListActiveByItem returns all active holds for an item. Used by
	// settlement to release the losers' holds.
	ListActiveByItem(ctx context.Context, itemID uint64) ([]*entity.WalletHold, error)
}
