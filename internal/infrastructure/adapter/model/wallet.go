package model

import (
	"time"
)

// Wallet represents the database model for wallets, one row per user
type Wallet struct {
	UserID           uint64    `gorm:"primaryKey"`
	Balance          int64     `gorm:"not null;default:0"` // Balance in cents
	AutoDebitConsent bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}

// WalletTransaction represents the append-only wallet audit trail
type WalletTransaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index"`
	ItemID        uint64    `gorm:"not null;default:0;index"`
	PaymentID     uint64    `gorm:"not null;default:0"`
	Kind          string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	BalanceAfter  int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for WalletTransaction
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
