package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// PaymentPurpose classifies what a payment is for
type PaymentPurpose string

// Payment purposes
const (
	PurposeRecharge PaymentPurpose = "recharge"
	PurposeSeat     PaymentPurpose = "seat"
	PurposePenalty  PaymentPurpose = "penalty"
	PurposeOrder    PaymentPurpose = "order"
	PurposeBuyNow   PaymentPurpose = "buy_now"
)

// IsValidPaymentPurpose validates if the purpose is one of the allowed values
func IsValidPaymentPurpose(purpose string) bool {
	switch PaymentPurpose(purpose) {
	case PurposeRecharge, PurposeSeat, PurposePenalty, PurposeOrder, PurposeBuyNow:
		return true
	default:
		return false
	}
}

// PaymentStatus is the provider-side lifecycle state
type PaymentStatus string

// Payment statuses
const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSucceeded  PaymentStatus = "succeeded"
	PaymentFailed     PaymentStatus = "failed"
)

// PaidVia records which settlement path paid for a won item
type PaidVia string

// Settlement payment paths
const (
	PaidViaWallet      PaidVia = "wallet"
	PaidViaBank        PaidVia = "bank"
	PaidViaBankPending PaidVia = "bank_pending"
)

// Payment represents money moving through a provider. Business effects are
// applied exactly once, guarded by ProcessedAt; the provider status may keep
// changing afterwards without re-triggering effects.
type Payment struct {
	ID uint64
	// ItemID is zero for payments not tied to an item (recharges)
	ItemID        uint64
	BuyerID       uint64
	AmountInCents int64
	Purpose       PaymentPurpose
	Provider      string
	ProviderRef   string
	// TransactionID is a globally unique identifier assigned at creation
	TransactionID string
	Status        PaymentStatus
	PaidVia       PaidVia
	// ProcessedAt marks business effects as applied; nil means not yet
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPayment creates a pending payment with a fresh transaction ID
func NewPayment(itemID, buyerID uint64, amountInCents int64, purpose PaymentPurpose, provider string, timeProvider coreport.TimeProvider) (*Payment, error) {
	if buyerID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amountInCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !IsValidPaymentPurpose(string(purpose)) {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &Payment{
		ItemID:        itemID,
		BuyerID:       buyerID,
		AmountInCents: amountInCents,
		Purpose:       purpose,
		Provider:      provider,
		TransactionID: uuid.NewString(),
		Status:        PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsProcessed reports whether business effects have already been applied
func (p *Payment) IsProcessed() bool {
	return p.ProcessedAt != nil
}

// MarkProcessed stamps the payment as having had its effects applied and
// moves it to succeeded
func (p *Payment) MarkProcessed(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	p.ProcessedAt = &now
	p.Status = PaymentSucceeded
	p.UpdatedAt = now
}

// MarkProcessing moves the payment into the provider's processing state
func (p *Payment) MarkProcessing(timeProvider coreport.TimeProvider) {
	p.Status = PaymentProcessing
	p.UpdatedAt = timeProvider.Now()
}

// MarkFailed moves the payment into the failed state
func (p *Payment) MarkFailed(timeProvider coreport.TimeProvider) {
	p.Status = PaymentFailed
	p.UpdatedAt = timeProvider.Now()
}

// GetAmount returns the payment amount as a string with 2 decimal places
func (p *Payment) GetAmount() string {
	return AmountInCentsToString(p.AmountInCents)
}
