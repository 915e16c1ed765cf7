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

// ParticipantRepository implements persistence.ParticipantRepository using GORM
type ParticipantRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewParticipantRepository creates a new ParticipantRepository instance
func NewParticipantRepository(db *gorm.DB, logger coreport.Logger) *ParticipantRepository {
	return &ParticipantRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func participantModelToEntity(m *model.AuctionParticipant) *entity.AuctionParticipant {
	return &entity.AuctionParticipant{
		ID:               m.ID,
		ItemID:           m.ItemID,
		UserID:           m.UserID,
		IsBooked:         m.IsBooked,
		BookingCode:      m.BookingCode,
		Paid:             m.Paid,
		PaidAt:           m.PaidAt,
		PreviewStartedAt: m.PreviewStartedAt,
		UnbookedAt:       m.UnbookedAt,
		LastSeenAt:       m.LastSeenAt,
		PenaltyDue:       m.PenaltyDue,
		CodeVerifiedAt:   m.CodeVerifiedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *ParticipantRepository) handleError(operation string, err error, itemID, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"item_id": itemID,
		"user_id": userID,
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

// GetByItemAndUser returns the participant row for a pair, nil when absent
func (r *ParticipantRepository) GetByItemAndUser(ctx context.Context, itemID, userID uint64) (*entity.AuctionParticipant, error) {
	var m model.AuctionParticipant
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("getting participant", err, itemID, userID)
	}
	return participantModelToEntity(&m), nil
}

// GetByItemAndUserForUpdate is GetByItemAndUser with a row lock
func (r *ParticipantRepository) GetByItemAndUserForUpdate(ctx context.Context, itemID, userID uint64) (*entity.AuctionParticipant, error) {
	var m model.AuctionParticipant
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("locking participant", err, itemID, userID)
	}
	return participantModelToEntity(&m), nil
}

// Create saves a new participant row
func (r *ParticipantRepository) Create(ctx context.Context, participant *entity.AuctionParticipant) error {
	m := &model.AuctionParticipant{
		ItemID:           participant.ItemID,
		UserID:           participant.UserID,
		IsBooked:         participant.IsBooked,
		BookingCode:      participant.BookingCode,
		Paid:             participant.Paid,
		PaidAt:           participant.PaidAt,
		PreviewStartedAt: participant.PreviewStartedAt,
		UnbookedAt:       participant.UnbookedAt,
		LastSeenAt:       participant.LastSeenAt,
		PenaltyDue:       participant.PenaltyDue,
		CodeVerifiedAt:   participant.CodeVerifiedAt,
		CreatedAt:        participant.CreatedAt,
		UpdatedAt:        participant.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating participant", err, participant.ItemID, participant.UserID)
	}
	participant.ID = m.ID
	return nil
}

// Update persists booking, presence and penalty changes
func (r *ParticipantRepository) Update(ctx context.Context, participant *entity.AuctionParticipant) error {
	result := r.db.WithContext(ctx).
		Model(&model.AuctionParticipant{}).
		Where("id = ?", participant.ID).
		Updates(map[string]any{
			"is_booked":          participant.IsBooked,
			"booking_code":       participant.BookingCode,
			"paid":               participant.Paid,
			"paid_at":            participant.PaidAt,
			"preview_started_at": participant.PreviewStartedAt,
			"unbooked_at":        participant.UnbookedAt,
			"last_seen_at":       participant.LastSeenAt,
			"penalty_due":        participant.PenaltyDue,
			"code_verified_at":   participant.CodeVerifiedAt,
			"updated_at":         participant.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleError("updating participant", result.Error, participant.ItemID, participant.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// CountBooked returns the number of currently booked seats for an item
func (r *ParticipantRepository) CountBooked(ctx context.Context, itemID uint64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AuctionParticipant{}).
		Where("item_id = ? AND is_booked = ?", itemID, true).
		Count(&count).Error
	if err != nil {
		return 0, r.handleError("counting booked seats", err, itemID, 0)
	}
	return int(count), nil
}

// ListBookedByItem returns all booked participants for an item
func (r *ParticipantRepository) ListBookedByItem(ctx context.Context, itemID uint64) ([]*entity.AuctionParticipant, error) {
	var models []model.AuctionParticipant
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_booked = ?", itemID, true).
		Find(&models).Error
	if err != nil {
		return nil, r.handleError("listing booked participants", err, itemID, 0)
	}

	participants := make([]*entity.AuctionParticipant, 0, len(models))
	for i := range models {
		participants = append(participants, participantModelToEntity(&models[i]))
	}
	return participants, nil
}
