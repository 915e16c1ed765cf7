package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// BookingCodeLength is the number of digits in a seat booking code
const BookingCodeLength = 6

// UnbookWindow is how long after preview start a seat can still be unbooked
const UnbookWindow = time.Minute

// AuctionParticipant tracks a user's seat in an auction: booking state, paid
// seat fee, presence heartbeat and any outstanding offline penalty. One row
// per (item, user) pair.
type AuctionParticipant struct {
	ID          uint64
	ItemID      uint64
	UserID      uint64
	IsBooked    bool
	BookingCode string
	Paid        bool
	PaidAt      *time.Time
	// PreviewStartedAt anchors the unbooking window
	PreviewStartedAt *time.Time
	UnbookedAt       *time.Time
	// LastSeenAt is refreshed by presence pings while the auction runs
	LastSeenAt *time.Time
	PenaltyDue bool
	// CodeVerifiedAt is set once the participant proves their booking code,
	// which gates access to the live call
	CodeVerifiedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAuctionParticipant creates an unbooked participant record
func NewAuctionParticipant(itemID, userID uint64, timeProvider coreport.TimeProvider) (*AuctionParticipant, error) {
	if itemID == 0 {
		return nil, errs.ErrInvalidItemID
	}
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &AuctionParticipant{
		ItemID:    itemID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Book marks the seat as booked with a fresh booking code
func (p *AuctionParticipant) Book(timeProvider coreport.TimeProvider) error {
	if p.IsBooked {
		return errs.ErrSeatAlreadyBooked
	}
	code, err := NewBookingCode()
	if err != nil {
		return err
	}
	now := timeProvider.Now()
	p.IsBooked = true
	p.BookingCode = code
	p.UnbookedAt = nil
	p.UpdatedAt = now
	return nil
}

// Unbook releases the seat. Only allowed before the preview window closes.
func (p *AuctionParticipant) Unbook(timeProvider coreport.TimeProvider) error {
	if !p.IsBooked {
		return errs.ErrSeatNotBooked
	}
	now := timeProvider.Now()
	if p.PreviewStartedAt != nil && now.Sub(*p.PreviewStartedAt) > UnbookWindow {
		return errs.ErrUnbookWindowClosed
	}
	p.IsBooked = false
	p.UnbookedAt = &now
	p.UpdatedAt = now
	return nil
}

// VerifyCode checks the provided code and stamps the verification time.
// Verification also re-activates a booking unbooked by mistake.
func (p *AuctionParticipant) VerifyCode(code string, timeProvider coreport.TimeProvider) error {
	if p.BookingCode == "" || p.BookingCode != code {
		return errs.ErrInvalidBookingCode
	}
	now := timeProvider.Now()
	p.IsBooked = true
	p.UnbookedAt = nil
	p.CodeVerifiedAt = &now
	p.UpdatedAt = now
	return nil
}

// StartPreview anchors the unbooking window at the current time
func (p *AuctionParticipant) StartPreview(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	p.PreviewStartedAt = &now
	p.UpdatedAt = now
}

// RecordPresence refreshes the presence heartbeat
func (p *AuctionParticipant) RecordPresence(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	p.LastSeenAt = &now
	p.UpdatedAt = now
}

// IsOffline reports whether the participant has been silent longer than the
// given threshold. A participant who never pinged is not considered offline.
func (p *AuctionParticipant) IsOffline(now time.Time, threshold time.Duration) bool {
	if p.LastSeenAt == nil {
		return false
	}
	return now.Sub(*p.LastSeenAt) > threshold
}

// MarkPaid records the seat fee payment
func (p *AuctionParticipant) MarkPaid(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	p.Paid = true
	p.PaidAt = &now
	p.UpdatedAt = now
}

// AssessPenalty flags an outstanding penalty
func (p *AuctionParticipant) AssessPenalty(timeProvider coreport.TimeProvider) {
	p.PenaltyDue = true
	p.UpdatedAt = timeProvider.Now()
}

// ClearPenalty removes the penalty flag after payment
func (p *AuctionParticipant) ClearPenalty(timeProvider coreport.TimeProvider) {
	p.PenaltyDue = false
	p.UpdatedAt = timeProvider.Now()
}

// NewBookingCode generates a random numeric booking code
func NewBookingCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < BookingCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("%w: booking code generation failed", errs.ErrInternalServer)
	}
	return fmt.Sprintf("%0*d", BookingCodeLength, n), nil
}
