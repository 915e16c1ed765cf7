package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// Bid represents a bid on an auction item. A bidder's previous bids on the
// same item are superseded by amount ordering rather than deactivated; the
// leader is the active bid with the highest amount, earliest first on ties.
type Bid struct {
	ID            uint64
	ItemID        uint64
	BidderID      uint64
	AmountInCents int64
	IsActive      bool
	// TxID is a globally unique identifier assigned at creation, used for
	// audit correlation across the ledger and notifications
	TxID      string
	CreatedAt time.Time
}

// NewBid creates an active bid with a fresh transaction ID
func NewBid(itemID, bidderID uint64, amountInCents int64, timeProvider coreport.TimeProvider) (*Bid, error) {
	if itemID == 0 {
		return nil, errs.ErrInvalidItemID
	}
	if bidderID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Bid{
		ItemID:        itemID,
		BidderID:      bidderID,
		AmountInCents: amountInCents,
		IsActive:      true,
		TxID:          uuid.NewString(),
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// GetAmount returns the bid amount as a string with 2 decimal places
func (b *Bid) GetAmount() string {
	return AmountInCentsToString(b.AmountInCents)
}

// Outranks reports whether this bid beats the other under leader ordering:
// higher amount wins, earlier creation wins ties
func (b *Bid) Outranks(other *Bid) bool {
	if other == nil {
		return true
	}
	if b.AmountInCents != other.AmountInCents {
		return b.AmountInCents > other.AmountInCents
	}
	return b.CreatedAt.Before(other.CreatedAt)
}
