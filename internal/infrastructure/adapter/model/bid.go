package model

import (
	"time"
)

// Bid represents the database model for bids
type Bid struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	ItemID        uint64    `gorm:"not null;index:idx_bids_item_active"`
	BidderID      uint64    `gorm:"not null;index"`
	AmountInCents int64     `gorm:"not null"`
	IsActive      bool      `gorm:"not null;default:true;index:idx_bids_item_active"`
	TxID          string    `gorm:"uniqueIndex;not null;size:36"`
	CreatedAt     time.Time `gorm:"not null"`

	Item AuctionItem `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName specifies the table name for Bid
func (Bid) TableName() string {
	return "bids"
}
