package model

import (
	"time"
)

// AuctionItem represents the database model for auction items
type AuctionItem struct {
	ID                   uint64    `gorm:"primaryKey;autoIncrement"`
	OwnerID              uint64    `gorm:"not null;index"`
	Title                string    `gorm:"not null;size:255"`
	Description          string    `gorm:"type:text"`
	StartingPriceInCents int64     `gorm:"not null"`
	BuyNowPriceInCents   int64     `gorm:"not null;default:0"`
	StartsAt             time.Time `gorm:"not null"`
	EndsAt               time.Time `gorm:"not null;index"`
	IsActive             bool      `gorm:"not null;default:true;index"`
	IsSettled            bool      `gorm:"not null;default:false;index"`
	SeatLimit            int       `gorm:"not null;default:0"`
	CallStartedAt        *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName specifies the table name for AuctionItem
func (AuctionItem) TableName() string {
	return "auction_items"
}
