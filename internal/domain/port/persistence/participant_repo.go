package persistence

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// ParticipantRepository defines methods to interact with auction seat data
type ParticipantRepository interface {
	// GetByItemAndUser returns the participant row for a (item, user) pair,
	// or nil without error when the user never interacted with the auction
	GetByItemAndUser(ctx context.Context, itemID, userID uint64) (*entity.AuctionParticipant, error)

	// GetByItemAndUserForUpdate is GetByItemAndUser with a row lock
	GetByItemAndUserForUpdate(ctx context.Context, itemID, userID uint64) (*entity.AuctionParticipant, error)

	// Create saves a new participant row
	//
	// Possible errors:
	// - ErrConstraintViolation: If a row already exists for the pair
	Create(ctx context.Context, participant *entity.AuctionParticipant) error

	// Update persists booking, presence and penalty changes
	Update(ctx context.Context, participant *entity.AuctionParticipant) error

	// CountBooked returns the number of currently booked seats for an item
	CountBooked(ctx context.Context, itemID uint64) (int, error)

	// ListBookedByItem returns all booked participants for an item
	ListBookedByItem(ctx context.Context, itemID uint64) ([]*entity.AuctionParticipant, error)
}
