package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetItemRepository returns an item repository bound to the current transaction
	GetItemRepository(ctx context.Context) ItemRepository

	// GetBidRepository returns a bid repository bound to the current transaction
	GetBidRepository(ctx context.Context) BidRepository

	// GetWalletRepository returns a wallet repository bound to the current transaction
	GetWalletRepository(ctx context.Context) WalletRepository

	// GetWalletTransactionRepository returns an audit repository bound to the current transaction
	GetWalletTransactionRepository(ctx context.Context) WalletTransactionRepository

	// GetHoldRepository returns a hold repository bound to the current transaction
	GetHoldRepository(ctx context.Context) HoldRepository

	// GetParticipantRepository returns a participant repository bound to the current transaction
	GetParticipantRepository(ctx context.Context) ParticipantRepository

	// GetPaymentRepository returns a payment repository bound to the current transaction
	GetPaymentRepository(ctx context.Context) PaymentRepository

	// GetOrderRepository returns an order repository bound to the current transaction
	GetOrderRepository(ctx context.Context) OrderRepository

	// GetLedgerRepository returns a ledger repository bound to the current transaction
	GetLedgerRepository(ctx context.Context) LedgerRepository
}
