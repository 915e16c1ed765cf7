package persistence

import (
	"context"
	"time"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// ItemRepository defines methods to interact with auction item data
type ItemRepository interface {
	// GetByID retrieves an item by ID
	//
	// Possible errors:
	// - ErrItemNotFound: If item with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.AuctionItem, error)

	// GetByIDForUpdate retrieves an item by ID with a row lock. Must be
	// called inside a transaction; the lock is held until commit/rollback.
	//
	// Possible errors:
	// - ErrItemNotFound: If item with specified ID doesn't exist
	// - ErrRowLocked: If the lock wait times out
	// - ErrDatabaseConnection: If database connection fails
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.AuctionItem, error)

	// Create saves a new item
	Create(ctx context.Context, item *entity.AuctionItem) error

	// Update updates item fields (activity, settlement, call state)
	//
	// Possible errors:
	// - ErrItemNotFound: If item doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, item *entity.AuctionItem) error

	// ListEndedUnsettled returns items whose auction has ended but are not
	// yet settled, ordered by ends_at ascending, limited to the given batch
	// size. Used by the settlement sweeper.
	ListEndedUnsettled(ctx context.Context, now time.Time, limit int) ([]*entity.AuctionItem, error)

	// ListActive returns items currently open for bidding
	ListActive(ctx context.Context, now time.Time) ([]*entity.AuctionItem, error)
}
