package persistence

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// BidRepository defines methods to interact with bid data
type BidRepository interface {
	// Create saves a new bid
	//
	// Possible errors:
	// - ErrConstraintViolation: If the tx_id collides
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, bid *entity.Bid) error

	// GetLeader returns the current leading bid for an item: the active bid
	// with the highest amount, earliest creation first on ties. Returns nil
	// without error when there are no active bids.
	GetLeader(ctx context.Context, itemID uint64) (*entity.Bid, error)

	// ListActiveByItem returns all active bids for an item in leader order
	ListActiveByItem(ctx context.Context, itemID uint64) ([]*entity.Bid, error)

	// DeactivateByBidder marks all of a bidder's active bids on an item as
	// inactive. Used when a penalty removes a bidder from contention.
	DeactivateByBidder(ctx context.Context, itemID, bidderID uint64) error

	// GetByTxID retrieves a bid by its transaction ID
	//
	// Possible errors:
	// - ErrNotFound: If no bid carries the given transaction ID
	GetByTxID(ctx context.Context, txID string) (*entity.Bid, error)
}
