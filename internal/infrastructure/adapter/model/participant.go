package model

import (
	"time"
)

// AuctionParticipant represents the database model for auction seats
type AuctionParticipant struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement"`
	ItemID           uint64 `gorm:"not null;uniqueIndex:idx_participants_item_user"`
	UserID           uint64 `gorm:"not null;uniqueIndex:idx_participants_item_user"`
	IsBooked         bool   `gorm:"not null;default:false;index"`
	BookingCode      string `gorm:"size:12"`
	Paid             bool   `gorm:"not null;default:false"`
	PaidAt           *time.Time
	PreviewStartedAt *time.Time
	UnbookedAt       *time.Time
	LastSeenAt       *time.Time
	PenaltyDue       bool `gorm:"not null;default:false"`
	CodeVerifiedAt   *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`

	Item AuctionItem `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName specifies the table name for AuctionParticipant
func (AuctionParticipant) TableName() string {
	return "auction_participants"
}
