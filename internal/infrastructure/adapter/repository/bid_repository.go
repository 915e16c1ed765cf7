package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/model"
)

// BidRepository implements persistence.BidRepository using GORM
type BidRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBidRepository creates a new BidRepository instance
func NewBidRepository(db *gorm.DB, logger coreport.Logger) *BidRepository {
	return &BidRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func bidModelToEntity(m *model.Bid) *entity.Bid {
	return &entity.Bid{
		ID:            m.ID,
		ItemID:        m.ItemID,
		BidderID:      m.BidderID,
		AmountInCents: m.AmountInCents,
		IsActive:      m.IsActive,
		TxID:          m.TxID,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *BidRepository) handleError(operation string, err error, itemID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"item_id": itemID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRowLocked
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new bid
func (r *BidRepository) Create(ctx context.Context, bid *entity.Bid) error {
	m := &model.Bid{
		ItemID:        bid.ItemID,
		BidderID:      bid.BidderID,
		AmountInCents: bid.AmountInCents,
		IsActive:      bid.IsActive,
		TxID:          bid.TxID,
		CreatedAt:     bid.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating bid", err, bid.ItemID)
	}
	bid.ID = m.ID
	return nil
}

// GetLeader returns the current leading bid: highest amount first, earliest
// creation breaking ties. Nil without error when there are no active bids.
func (r *BidRepository) GetLeader(ctx context.Context, itemID uint64) (*entity.Bid, error) {
	var m model.Bid
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_active = ?", itemID, true).
		Order("amount_in_cents DESC, created_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("getting leader", err, itemID)
	}
	return bidModelToEntity(&m), nil
}

// ListActiveByItem returns all active bids for an item in leader order
func (r *BidRepository) ListActiveByItem(ctx context.Context, itemID uint64) ([]*entity.Bid, error) {
	var models []model.Bid
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_active = ?", itemID, true).
		Order("amount_in_cents DESC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.handleError("listing active bids", err, itemID)
	}

	bids := make([]*entity.Bid, 0, len(models))
	for i := range models {
		bids = append(bids, bidModelToEntity(&models[i]))
	}
	return bids, nil
}

// DeactivateByBidder marks all of a bidder's active bids on an item inactive
func (r *BidRepository) DeactivateByBidder(ctx context.Context, itemID, bidderID uint64) error {
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Where("item_id = ? AND bidder_id = ? AND is_active = ?", itemID, bidderID, true).
		Update("is_active", false).Error
	if err != nil {
		return r.handleError("deactivating bids", err, itemID)
	}
	return nil
}

// GetByTxID retrieves a bid by its transaction ID
func (r *BidRepository) GetByTxID(ctx context.Context, txID string) (*entity.Bid, error) {
	var m model.Bid
	err := r.db.WithContext(ctx).Where("tx_id = ?", txID).First(&m).Error
	if err != nil {
		return nil, r.handleError("getting bid by tx id", err, 0)
	}
	return bidModelToEntity(&m), nil
}
