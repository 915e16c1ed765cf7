package core

import (
	"context"
	"time"
)

// BidPlacedEvent is published after a bid transaction commits
type BidPlacedEvent struct {
	ItemID   uint64    `json:"item_id"`
	BidderID uint64    `json:"bidder_id"`
	Amount   string    `json:"amount"`
	TxID     string    `json:"tx_id"`
	PlacedAt time.Time `json:"placed_at"`
}

// AuctionSettledEvent is published after a settlement transaction commits
type AuctionSettledEvent struct {
	ItemID    uint64    `json:"item_id"`
	WinnerID  uint64    `json:"winner_id,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	PaidVia   string    `json:"paid_via,omitempty"`
	SettledAt time.Time `json:"settled_at"`
}

// PenaltyAssessedEvent is published when the penalty sweep flags a leader
type PenaltyAssessedEvent struct {
	ItemID     uint64    `json:"item_id"`
	UserID     uint64    `json:"user_id"`
	Amount     string    `json:"amount"`
	AssessedAt time.Time `json:"assessed_at"`
}

// Notifier publishes auction events to interested consumers. Publishing is
// best-effort: callers must treat errors as log-and-continue, never as a
// reason to fail or roll back the operation that produced the event.
type Notifier interface {
	PublishBidPlaced(ctx context.Context, event BidPlacedEvent) error
	PublishAuctionSettled(ctx context.Context, event AuctionSettledEvent) error
	PublishPenaltyAssessed(ctx context.Context, event PenaltyAssessedEvent) error
	// Close releases broker resources
	Close() error
}
