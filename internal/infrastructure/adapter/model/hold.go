package model

import (
	"time"
)

// WalletHold represents the database model for wallet holds. The
// single-active-hold invariant per (user, item) is enforced by a partial
// unique index created by the advanced index manager, not by a gorm tag.
type WalletHold struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index:idx_holds_user_item"`
	ItemID        uint64    `gorm:"not null;index:idx_holds_user_item"`
	AmountInCents int64     `gorm:"not null"`
	Status        string    `gorm:"not null;size:20;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Item AuctionItem `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName specifies the table name for WalletHold
func (WalletHold) TableName() string {
	return "wallet_holds"
}
