package migration

import (
	"context"

	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"gorm.io/gorm"
)

// AddConsentToWallets is a migration to add the auto_debit_consent column to the wallets table
type AddConsentToWallets struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAddConsentToWallets creates a new migration instance
func NewAddConsentToWallets(db *gorm.DB, logger coreport.Logger) *AddConsentToWallets {
	return &AddConsentToWallets{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *AddConsentToWallets) Run(ctx context.Context) error {
	m.logger.Info("Adding auto_debit_consent column to wallets table", nil)

	// Check if the column already exists
	var hasConsent bool
	if err := m.checkColumnExists(&hasConsent); err != nil {
		return err
	}

	// Add auto_debit_consent column if it doesn't exist
	if !hasConsent {
		if err := m.db.Exec(`ALTER TABLE wallets ADD COLUMN auto_debit_consent BOOLEAN NOT NULL DEFAULT FALSE`).Error; err != nil {
			m.logger.Error("Failed to add auto_debit_consent column", map[string]any{"error": err.Error()})
			return err
		}
	}

	m.logger.Info("Successfully added auto_debit_consent column to wallets table", nil)
	return nil
}

// checkColumnExists checks if the column already exists in the table
func (m *AddConsentToWallets) checkColumnExists(hasConsent *bool) error {
	// For PostgreSQL
	var columns []struct {
		ColumnName string `gorm:"column:column_name"`
	}

	err := m.db.Raw(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'wallets' AND column_name = 'auto_debit_consent'
	`).Scan(&columns).Error

	if err != nil {
		m.logger.Error("Failed to check column existence", map[string]any{"error": err.Error()})
		return err
	}

	for _, column := range columns {
		if column.ColumnName == "auto_debit_consent" {
			*hasConsent = true
		}
	}

	return nil
}
