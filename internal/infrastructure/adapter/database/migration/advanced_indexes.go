package migration

import (
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for better performance
func (m *AdvancedIndexManager) CreateAdvancedIndexes() error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	// One active hold per (user, item); concurrent reservations race on this
	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_holds_active_user_item
		ON wallet_holds (user_id, item_id)
		WHERE status = 'active'
	`).Error; err != nil {
		m.logger.Error("Failed to create partial unique index on wallet_holds", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Leader query orders active bids by amount desc, created_at asc
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bids_leader
		ON bids (item_id, amount_in_cents DESC, created_at ASC)
		WHERE is_active = true
	`).Error; err != nil {
		m.logger.Error("Failed to create leader index on bids", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Concurrent appenders race on the block index; the chain stays linear
	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_blocks_block_index
		ON ledger_blocks (block_index)
	`).Error; err != nil {
		m.logger.Error("Failed to create unique index on ledger_blocks.block_index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Available balance sums a user's active holds
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_wallet_holds_user_active
		ON wallet_holds (user_id)
		WHERE status = 'active'
	`).Error; err != nil {
		m.logger.Error("Failed to create user active holds index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Settlement sweep scans active items past their end time
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_auction_items_unsettled
		ON auction_items (ends_at)
		WHERE is_settled = false
	`).Error; err != nil {
		m.logger.Error("Failed to create unsettled items partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Create BRIN index for created_at (more efficient for temporal data)
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ledger_blocks_created_at_brin
		ON ledger_blocks USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Payment lookups by gateway transaction reference
	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_transaction_id
		ON payments (transaction_id)
	`).Error; err != nil {
		m.logger.Error("Failed to create unique index on payments.transaction_id", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL performance tweaks
func (m *AdvancedIndexManager) CreatePerformanceTweaks() error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Set fillfactor for bids table to reduce page splits
	if err := m.db.Exec(`
		ALTER TABLE bids SET (fillfactor = 90)
	`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for bids table", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	// Set statistics target for better query planning
	if err := m.db.Exec(`
		ALTER TABLE wallet_holds ALTER COLUMN user_id SET STATISTICS 1000
	`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for user_id", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	m.logger.Info("PostgreSQL performance tweaks applied successfully", nil)
	return nil
}
