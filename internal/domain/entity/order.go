package entity

import (
	"time"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// OrderStatus is the fulfillment lifecycle state
type OrderStatus string

// Order statuses
const (
	OrderCreated   OrderStatus = "created"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order represents the obligation created when an auction is won or an item
// is bought outright
type Order struct {
	ID            uint64
	ItemID        uint64
	BuyerID       uint64
	AmountInCents int64
	Status        OrderStatus
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder creates an order in the created state
func NewOrder(itemID, buyerID uint64, amountInCents int64, timeProvider coreport.TimeProvider) (*Order, error) {
	if itemID == 0 {
		return nil, errs.ErrInvalidItemID
	}
	if buyerID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Order{
		ItemID:        itemID,
		BuyerID:       buyerID,
		AmountInCents: amountInCents,
		Status:        OrderCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkPaid transitions the order to paid
func (o *Order) MarkPaid(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	o.Status = OrderPaid
	o.PaidAt = &now
	o.UpdatedAt = now
}

// GetAmount returns the order amount as a string with 2 decimal places
func (o *Order) GetAmount() string {
	return AmountInCentsToString(o.AmountInCents)
}
