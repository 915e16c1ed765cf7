package model

import (
	"time"
)

// LedgerBlock represents the database model for hash-chain ledger blocks.
// Rows are append-only; the unique index on Index arbitrates concurrent
// appends.
type LedgerBlock struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Index        uint64    `gorm:"column:block_index;uniqueIndex;not null"`
	PreviousHash string    `gorm:"not null;size:64"`
	Payload      string    `gorm:"type:text;not null"`
	Hash         string    `gorm:"not null;size:64"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for LedgerBlock
func (LedgerBlock) TableName() string {
	return "ledger_blocks"
}
