package model

import (
	"time"
)

// Order represents the database model for orders
type Order struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	ItemID        uint64 `gorm:"not null;index"`
	BuyerID       uint64 `gorm:"not null;index"`
	AmountInCents int64  `gorm:"not null"`
	Status        string `gorm:"not null;size:20"`
	PaidAt        *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Item AuctionItem `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
