package entity

import (
	"time"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// HoldStatus is the lifecycle state of a wallet hold
type HoldStatus string

// Hold lifecycle states. Transitions are one-way: active -> released or
// active -> consumed.
const (
	HoldActive   HoldStatus = "active"
	HoldReleased HoldStatus = "released"
	HoldConsumed HoldStatus = "consumed"
)

// WalletHold earmarks part of a wallet balance for an auction item. At most
// one active hold exists per (user, item) pair; a database partial unique
// index backs this invariant.
type WalletHold struct {
	ID            uint64
	UserID        uint64
	ItemID        uint64
	AmountInCents int64
	Status        HoldStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewWalletHold creates an active hold
func NewWalletHold(userID, itemID uint64, amountInCents int64, timeProvider coreport.TimeProvider) (*WalletHold, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if itemID == 0 {
		return nil, errs.ErrInvalidItemID
	}
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &WalletHold{
		UserID:        userID,
		ItemID:        itemID,
		AmountInCents: amountInCents,
		Status:        HoldActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsActive reports whether the hold still earmarks funds
func (h *WalletHold) IsActive() bool {
	return h.Status == HoldActive
}

// Raise grows the hold to the new amount. Holds only grow while active; a
// smaller or equal amount leaves the hold unchanged and returns the delta 0.
func (h *WalletHold) Raise(newAmountInCents int64, timeProvider coreport.TimeProvider) (int64, error) {
	if !h.IsActive() {
		return 0, errs.ErrNoActiveHold
	}
	if newAmountInCents <= h.AmountInCents {
		return 0, nil
	}
	delta := newAmountInCents - h.AmountInCents
	h.AmountInCents = newAmountInCents
	h.UpdatedAt = timeProvider.Now()
	return delta, nil
}

// Release transitions the hold to released
func (h *WalletHold) Release(timeProvider coreport.TimeProvider) error {
	if !h.IsActive() {
		return errs.ErrNoActiveHold
	}
	h.Status = HoldReleased
	h.UpdatedAt = timeProvider.Now()
	return nil
}

// Consume transitions the hold to consumed
func (h *WalletHold) Consume(timeProvider coreport.TimeProvider) error {
	if !h.IsActive() {
		return errs.ErrNoActiveHold
	}
	h.Status = HoldConsumed
	h.UpdatedAt = timeProvider.Now()
	return nil
}

// GetAmount returns the held amount as a string with 2 decimal places
func (h *WalletHold) GetAmount() string {
	return AmountInCentsToString(h.AmountInCents)
}
