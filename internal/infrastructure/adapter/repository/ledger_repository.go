package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/model"
)

// LedgerRepository implements persistence.LedgerRepository using GORM
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func ledgerModelToEntity(m *model.LedgerBlock) *entity.LedgerBlock {
	return &entity.LedgerBlock{
		Index:        m.Index,
		PreviousHash: m.PreviousHash,
		Payload:      m.Payload,
		Hash:         m.Hash,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *LedgerRepository) handleError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRowLocked
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetTailForUpdate returns the highest-index block with a row lock, nil when
// the chain is empty
func (r *LedgerRepository) GetTailForUpdate(ctx context.Context) (*entity.LedgerBlock, error) {
	var m model.LedgerBlock
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("block_index DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("locking ledger tail", err)
	}
	return ledgerModelToEntity(&m), nil
}

// Append persists a new block
func (r *LedgerRepository) Append(ctx context.Context, block *entity.LedgerBlock) error {
	m := &model.LedgerBlock{
		Index:        block.Index,
		PreviousHash: block.PreviousHash,
		Payload:      block.Payload,
		Hash:         block.Hash,
		CreatedAt:    block.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("appending ledger block", err)
	}
	return nil
}

// List returns blocks ordered by index ascending
func (r *LedgerRepository) List(ctx context.Context, fromIndex uint64, limit int) ([]*entity.LedgerBlock, error) {
	var models []model.LedgerBlock
	query := r.db.WithContext(ctx).
		Where("block_index >= ?", fromIndex).
		Order("block_index ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, r.handleError("listing ledger blocks", err)
	}

	blocks := make([]*entity.LedgerBlock, 0, len(models))
	for i := range models {
		blocks = append(blocks, ledgerModelToEntity(&models[i]))
	}
	return blocks, nil
}

// Count returns the chain length
func (r *LedgerRepository) Count(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.LedgerBlock{}).Count(&count).Error; err != nil {
		return 0, r.handleError("counting ledger blocks", err)
	}
	return uint64(count), nil
}
