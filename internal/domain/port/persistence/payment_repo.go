package persistence

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// PaymentRepository defines methods to interact with payment data
type PaymentRepository interface {
	// Create saves a new payment
	//
	// Possible errors:
	// - ErrConstraintViolation: If the transaction_id collides
	Create(ctx context.Context, payment *entity.Payment) error

	// GetByID retrieves a payment by ID
	//
	// Possible errors:
	// - ErrPaymentNotFound: If payment with specified ID doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Payment, error)

	// GetByIDForUpdate retrieves a payment by ID with a row lock. Must be
	// called inside a transaction; effect application serializes on it.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Payment, error)

	// GetByTransactionID retrieves a payment by its unique transaction ID
	//
	// Possible errors:
	// - ErrPaymentNotFound: If no payment carries the given transaction ID
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)

	// Update persists status and processing changes
	Update(ctx context.Context, payment *entity.Payment) error
}

// OrderRepository defines methods to interact with order data
type OrderRepository interface {
	// Create saves a new order
	Create(ctx context.Context, order *entity.Order) error

	// GetByID retrieves an order by ID
	//
	// Possible errors:
	// - ErrOrderNotFound: If order with specified ID doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Order, error)

	// GetByItem retrieves the order for an item, or nil without error when
	// the item has not produced an order
	GetByItem(ctx context.Context, itemID uint64) (*entity.Order, error)

	// Update persists status changes
	Update(ctx context.Context, order *entity.Order) error
}
