package persistence

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// WalletRepository defines methods to interact with wallet data
type WalletRepository interface {
	// GetByUserID retrieves a user's wallet. Returns ErrNotFound when the
	// user has no wallet yet; callers create wallets lazily.
	GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// GetByUserIDForUpdate retrieves a user's wallet with a row lock. Must
	// be called inside a transaction.
	//
	// Possible errors:
	// - ErrNotFound: If the user has no wallet yet
	// - ErrRowLocked: If the lock wait times out
	// - ErrDatabaseConnection: If database connection fails
	GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// Create saves a new wallet
	//
	// Possible errors:
	// - ErrConstraintViolation: If a wallet already exists for the user
	Create(ctx context.Context, wallet *entity.Wallet) error

	// Update persists balance and consent changes
	Update(ctx context.Context, wallet *entity.Wallet) error
}

// WalletTransactionRepository stores the append-only wallet audit trail
type WalletTransactionRepository interface {
	// Create appends an audit row. Rows are never updated or deleted.
	Create(ctx context.Context, transaction *entity.WalletTransaction) error

	// ListByUser returns a user's audit rows, newest first
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.WalletTransaction, error)
}
