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

// HoldRepository implements persistence.HoldRepository using GORM
type HoldRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewHoldRepository creates a new HoldRepository instance
func NewHoldRepository(db *gorm.DB, logger coreport.Logger) *HoldRepository {
	return &HoldRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func holdModelToEntity(m *model.WalletHold) *entity.WalletHold {
	return &entity.WalletHold{
		ID:            m.ID,
		UserID:        m.UserID,
		ItemID:        m.ItemID,
		AmountInCents: m.AmountInCents,
		Status:        entity.HoldStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *HoldRepository) handleError(operation string, err error, userID, itemID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"item_id": itemID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		// The partial unique index rejected a second active hold
		return errs.ErrDuplicateHold
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRowLocked
	}
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetActive returns the active hold for a (user, item) pair, nil when none
func (r *HoldRepository) GetActive(ctx context.Context, userID, itemID uint64) (*entity.WalletHold, error) {
	var m model.WalletHold
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ? AND status = ?", userID, itemID, string(entity.HoldActive)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("getting hold", err, userID, itemID)
	}
	return holdModelToEntity(&m), nil
}

// GetActiveForUpdate is GetActive with a row lock
func (r *HoldRepository) GetActiveForUpdate(ctx context.Context, userID, itemID uint64) (*entity.WalletHold, error) {
	var m model.WalletHold
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND item_id = ? AND status = ?", userID, itemID, string(entity.HoldActive)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("locking hold", err, userID, itemID)
	}
	return holdModelToEntity(&m), nil
}

// Create saves a new hold
func (r *HoldRepository) Create(ctx context.Context, hold *entity.WalletHold) error {
	m := &model.WalletHold{
		UserID:        hold.UserID,
		ItemID:        hold.ItemID,
		AmountInCents: hold.AmountInCents,
		Status:        string(hold.Status),
		CreatedAt:     hold.CreatedAt,
		UpdatedAt:     hold.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating hold", err, hold.UserID, hold.ItemID)
	}
	hold.ID = m.ID
	return nil
}

// Update persists amount and status changes
func (r *HoldRepository) Update(ctx context.Context, hold *entity.WalletHold) error {
	result := r.db.WithContext(ctx).
		Model(&model.WalletHold{}).
		Where("id = ?", hold.ID).
		Updates(map[string]any{
			"amount_in_cents": hold.AmountInCents,
			"status":          string(hold.Status),
			"updated_at":      hold.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleError("updating hold", result.Error, hold.UserID, hold.ItemID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SumActiveByUser returns the total of a user's active holds in cents
func (r *HoldRepository) SumActiveByUser(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.WalletHold{}).
		Where("user_id = ? AND status = ?", userID, string(entity.HoldActive)).
		Select("COALESCE(SUM(amount_in_cents), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, r.handleError("summing holds", err, userID, 0)
	}
	return total, nil
}

// ListActiveByItem returns all active holds for an item
func (r *HoldRepository) ListActiveByItem(ctx context.Context, itemID uint64) ([]*entity.WalletHold, error) {
	var models []model.WalletHold
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, string(entity.HoldActive)).
		Find(&models).Error
	if err != nil {
		return nil, r.handleError("listing holds", err, 0, itemID)
	}

	holds := make([]*entity.WalletHold, 0, len(models))
	for i := range models {
		holds = append(holds, holdModelToEntity(&models[i]))
	}
	return holds, nil
}
