package model

import (
	"time"
)

// Payment represents the database model for payments
type Payment struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	ItemID        uint64 `gorm:"not null;default:0;index"`
	BuyerID       uint64 `gorm:"not null;index"`
	AmountInCents int64  `gorm:"not null"`
	Purpose       string `gorm:"not null;size:20;index"`
	Provider      string `gorm:"not null;size:50"`
	ProviderRef   string `gorm:"size:255"`
	TransactionID string `gorm:"uniqueIndex;not null;size:36"`
	Status        string `gorm:"not null;size:20"`
	PaidVia       string `gorm:"size:20"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
