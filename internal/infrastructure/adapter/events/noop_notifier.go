package events

import (
	"context"

	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// NoopNotifier discards all events. Used when no broker URL is configured
// and in tests.
type NoopNotifier struct{}

// NewNoopNotifier creates a new NoopNotifier
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// PublishBidPlaced does nothing
func (n *NoopNotifier) PublishBidPlaced(ctx context.Context, event coreport.BidPlacedEvent) error {
	return nil
}

// PublishAuctionSettled does nothing
func (n *NoopNotifier) PublishAuctionSettled(ctx context.Context, event coreport.AuctionSettledEvent) error {
	return nil
}

// PublishPenaltyAssessed does nothing
func (n *NoopNotifier) PublishPenaltyAssessed(ctx context.Context, event coreport.PenaltyAssessedEvent) error {
	return nil
}

// Close does nothing
func (n *NoopNotifier) Close() error {
	return nil
}
