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

// WalletRepository implements persistence.WalletRepository using GORM
type WalletRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletRepository creates a new WalletRepository instance
func NewWalletRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WalletRepository {
	return &WalletRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *WalletRepository) modelToEntity(m *model.Wallet) (*entity.Wallet, error) {
	wallet, err := entity.NewWallet(m.UserID, r.timeProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create wallet entity: %s", errs.ErrInternalServer, err.Error())
	}
	wallet.SetBalance(m.Balance, r.timeProvider)
	wallet.AutoDebitConsent = m.AutoDebitConsent
	wallet.CreatedAt = m.CreatedAt
	wallet.UpdatedAt = m.UpdatedAt
	return wallet, nil
}

func (r *WalletRepository) handleError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
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

// GetByUserID retrieves a user's wallet
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var m model.Wallet
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, r.handleError("getting wallet", err, userID)
	}
	return r.modelToEntity(&m)
}

// GetByUserIDForUpdate retrieves a user's wallet with a row lock
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var m model.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "user_id = ?", userID).Error
	if err != nil {
		return nil, r.handleError("locking wallet", err, userID)
	}
	return r.modelToEntity(&m)
}

// Create saves a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	m := &model.Wallet{
		UserID:           wallet.UserID,
		Balance:          wallet.Balance(),
		AutoDebitConsent: wallet.AutoDebitConsent,
		CreatedAt:        wallet.CreatedAt,
		UpdatedAt:        wallet.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating wallet", err, wallet.UserID)
	}
	return nil
}

// Update persists balance and consent changes
func (r *WalletRepository) Update(ctx context.Context, wallet *entity.Wallet) error {
	result := r.db.WithContext(ctx).
		Model(&model.Wallet{}).
		Where("user_id = ?", wallet.UserID).
		Updates(map[string]any{
			"balance":            wallet.Balance(),
			"auto_debit_consent": wallet.AutoDebitConsent,
			"updated_at":         wallet.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleError("updating wallet", result.Error, wallet.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// WalletTransactionRepository implements the append-only audit trail using GORM
type WalletTransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletTransactionRepository creates a new WalletTransactionRepository instance
func NewWalletTransactionRepository(db *gorm.DB, logger coreport.Logger) *WalletTransactionRepository {
	return &WalletTransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create appends an audit row
func (r *WalletTransactionRepository) Create(ctx context.Context, transaction *entity.WalletTransaction) error {
	m := &model.WalletTransaction{
		UserID:        transaction.UserID,
		ItemID:        transaction.ItemID,
		PaymentID:     transaction.PaymentID,
		Kind:          string(transaction.Kind),
		AmountInCents: transaction.AmountInCents,
		BalanceAfter:  transaction.BalanceAfter,
		CreatedAt:     transaction.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Database error when creating wallet audit row", map[string]any{
			"user_id": transaction.UserID,
			"error":   err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	transaction.ID = m.ID
	return nil
}

// ListByUser returns a user's audit rows, newest first
func (r *WalletTransactionRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.WalletTransaction, error) {
	var models []model.WalletTransaction
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	rows := make([]*entity.WalletTransaction, 0, len(models))
	for i := range models {
		m := &models[i]
		rows = append(rows, &entity.WalletTransaction{
			ID:            m.ID,
			UserID:        m.UserID,
			ItemID:        m.ItemID,
			PaymentID:     m.PaymentID,
			Kind:          entity.TransactionKind(m.Kind),
			AmountInCents: m.AmountInCents,
			BalanceAfter:  m.BalanceAfter,
			CreatedAt:     m.CreatedAt,
		})
	}
	return rows, nil
}
