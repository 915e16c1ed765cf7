package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/model"
)

// ItemRepository implements persistence.ItemRepository using GORM
type ItemRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewItemRepository creates a new ItemRepository instance
func NewItemRepository(db *gorm.DB, logger coreport.Logger) *ItemRepository {
	return &ItemRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func itemModelToEntity(m *model.AuctionItem) *entity.AuctionItem {
	return &entity.AuctionItem{
		ID:                   m.ID,
		OwnerID:              m.OwnerID,
		Title:                m.Title,
		Description:          m.Description,
		StartingPriceInCents: m.StartingPriceInCents,
		BuyNowPriceInCents:   m.BuyNowPriceInCents,
		StartsAt:             m.StartsAt,
		EndsAt:               m.EndsAt,
		IsActive:             m.IsActive,
		IsSettled:            m.IsSettled,
		SeatLimit:            m.SeatLimit,
		CallStartedAt:        m.CallStartedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func itemEntityToModel(e *entity.AuctionItem) *model.AuctionItem {
	return &model.AuctionItem{
		ID:                   e.ID,
		OwnerID:              e.OwnerID,
		Title:                e.Title,
		Description:          e.Description,
		StartingPriceInCents: e.StartingPriceInCents,
		BuyNowPriceInCents:   e.BuyNowPriceInCents,
		StartsAt:             e.StartsAt,
		EndsAt:               e.EndsAt,
		IsActive:             e.IsActive,
		IsSettled:            e.IsSettled,
		SeatLimit:            e.SeatLimit,
		CallStartedAt:        e.CallStartedAt,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

// handleError standardizes database error handling for items
func (r *ItemRepository) handleError(operation string, err error, itemID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrItemNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"item_id": itemID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRowLocked
	}
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uint64) (*entity.AuctionItem, error) {
	var m model.AuctionItem
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting item", err, id)
	}
	return itemModelToEntity(&m), nil
}

// GetByIDForUpdate retrieves an item by ID with a row lock
func (r *ItemRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.AuctionItem, error) {
	var m model.AuctionItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, r.handleError("locking item", err, id)
	}
	return itemModelToEntity(&m), nil
}

// Create saves a new item
func (r *ItemRepository) Create(ctx context.Context, item *entity.AuctionItem) error {
	m := itemEntityToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating item", err, item.ID)
	}
	item.ID = m.ID
	return nil
}

// Update persists item changes
func (r *ItemRepository) Update(ctx context.Context, item *entity.AuctionItem) error {
	m := itemEntityToModel(item)
	result := r.db.WithContext(ctx).
		Model(&model.AuctionItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"is_active":       m.IsActive,
			"is_settled":      m.IsSettled,
			"ends_at":         m.EndsAt,
			"call_started_at": m.CallStartedAt,
			"updated_at":      m.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleError("updating item", result.Error, item.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrItemNotFound
	}
	return nil
}

// ListEndedUnsettled returns ended, unsettled items in ends_at order
func (r *ItemRepository) ListEndedUnsettled(ctx context.Context, now time.Time, limit int) ([]*entity.AuctionItem, error) {
	var models []model.AuctionItem
	query := r.db.WithContext(ctx).
		Where("is_settled = ? AND ends_at <= ?", false, now).
		Order("ends_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, r.handleError("listing ended items", err, 0)
	}

	items := make([]*entity.AuctionItem, 0, len(models))
	for i := range models {
		items = append(items, itemModelToEntity(&models[i]))
	}
	return items, nil
}

// ListActive returns items currently open for bidding
func (r *ItemRepository) ListActive(ctx context.Context, now time.Time) ([]*entity.AuctionItem, error) {
	var models []model.AuctionItem
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_settled = ? AND starts_at <= ? AND ends_at > ?", true, false, now, now).
		Order("ends_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.handleError("listing active items", err, 0)
	}

	items := make([]*entity.AuctionItem, 0, len(models))
	for i := range models {
		items = append(items, itemModelToEntity(&models[i]))
	}
	return items, nil
}
