package entity

import (
	"time"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
)

// AuctionItem represents an item listed for auction. Settlement is terminal:
// once IsSettled is true the item never accepts bids again.
type AuctionItem struct {
	ID                   uint64
	OwnerID              uint64
	Title                string
	Description          string
	StartingPriceInCents int64
	// BuyNowPriceInCents is zero when the item has no buy-now option
	BuyNowPriceInCents int64
	StartsAt           time.Time
	EndsAt             time.Time
	IsActive           bool
	IsSettled          bool
	SeatLimit          int
	// CallStartedAt is set when the owner opens the live call for the auction
	CallStartedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasStarted reports whether the bidding window has opened
func (i *AuctionItem) HasStarted(now time.Time) bool {
	return !now.Before(i.StartsAt)
}

// HasEnded reports whether the bidding window has closed
func (i *AuctionItem) HasEnded(now time.Time) bool {
	return !now.Before(i.EndsAt)
}

// CanAcceptBids reports whether the item accepts bids at the given moment.
// Market hours wrap past midnight when closeHour < openHour (e.g. 06..01).
func (i *AuctionItem) CanAcceptBids(now time.Time, openHour, closeHour int) bool {
	if !i.IsActive || i.IsSettled {
		return false
	}
	if !i.HasStarted(now) || i.HasEnded(now) {
		return false
	}
	return withinMarketHours(now, openHour, closeHour)
}

func withinMarketHours(now time.Time, openHour, closeHour int) bool {
	h := now.Hour()
	if openHour == closeHour {
		return true
	}
	if openHour < closeHour {
		return h >= openHour && h < closeHour
	}
	// window wraps past midnight
	return h >= openHour || h < closeHour
}

// MinimumNextBid returns the lowest acceptable next bid given the current
// leading amount (zero when there is no leader)
func (i *AuctionItem) MinimumNextBid(leaderAmountInCents, minimumIncrementInCents int64) int64 {
	if leaderAmountInCents == 0 {
		return i.StartingPriceInCents
	}
	minimum := leaderAmountInCents + minimumIncrementInCents
	if minimum < i.StartingPriceInCents {
		return i.StartingPriceInCents
	}
	return minimum
}

// MaximumAllowedBid returns the sanity ceiling for bids on this item
func (i *AuctionItem) MaximumAllowedBid(maxBidMultiplier int64) int64 {
	return i.StartingPriceInCents * maxBidMultiplier
}

// IsBuyNowAvailable reports whether the item can be bought outright
func (i *AuctionItem) IsBuyNowAvailable() bool {
	return i.BuyNowPriceInCents > 0 && i.IsActive && !i.IsSettled
}

// ValidateBidder rejects bids from the item's owner
func (i *AuctionItem) ValidateBidder(bidderID uint64) error {
	if bidderID == 0 {
		return errs.ErrInvalidUserID
	}
	if bidderID == i.OwnerID {
		return errs.ErrOwnerCannotBid
	}
	return nil
}
