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

// PaymentRepository implements persistence.PaymentRepository using GORM
type PaymentRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *gorm.DB, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func paymentModelToEntity(m *model.Payment) *entity.Payment {
	return &entity.Payment{
		ID:            m.ID,
		ItemID:        m.ItemID,
		BuyerID:       m.BuyerID,
		AmountInCents: m.AmountInCents,
		Purpose:       entity.PaymentPurpose(m.Purpose),
		Provider:      m.Provider,
		ProviderRef:   m.ProviderRef,
		TransactionID: m.TransactionID,
		Status:        entity.PaymentStatus(m.Status),
		PaidVia:       entity.PaidVia(m.PaidVia),
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *PaymentRepository) handleError(operation string, err error, paymentID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrPaymentNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"payment_id": paymentID,
		"error":      err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRowLocked
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	m := &model.Payment{
		ItemID:        payment.ItemID,
		BuyerID:       payment.BuyerID,
		AmountInCents: payment.AmountInCents,
		Purpose:       string(payment.Purpose),
		Provider:      payment.Provider,
		ProviderRef:   payment.ProviderRef,
		TransactionID: payment.TransactionID,
		Status:        string(payment.Status),
		PaidVia:       string(payment.PaidVia),
		ProcessedAt:   payment.ProcessedAt,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating payment", err, 0)
	}
	payment.ID = m.ID
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uint64) (*entity.Payment, error) {
	var m model.Payment
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting payment", err, id)
	}
	return paymentModelToEntity(&m), nil
}

// GetByIDForUpdate retrieves a payment by ID with a row lock
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Payment, error) {
	var m model.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, r.handleError("locking payment", err, id)
	}
	return paymentModelToEntity(&m), nil
}

// GetByTransactionID retrieves a payment by its unique transaction ID
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	var m model.Payment
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&m).Error
	if err != nil {
		return nil, r.handleError("getting payment by transaction id", err, 0)
	}
	return paymentModelToEntity(&m), nil
}

// Update persists status and processing changes
func (r *PaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]any{
			"status":       string(payment.Status),
			"paid_via":     string(payment.PaidVia),
			"provider_ref": payment.ProviderRef,
			"processed_at": payment.ProcessedAt,
			"updated_at":   payment.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleError("updating payment", result.Error, payment.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func orderModelToEntity(m *model.Order) *entity.Order {
	return &entity.Order{
		ID:            m.ID,
		ItemID:        m.ItemID,
		BuyerID:       m.BuyerID,
		AmountInCents: m.AmountInCents,
		Status:        entity.OrderStatus(m.Status),
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *OrderRepository) handleError(operation string, err error, orderID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrOrderNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"order_id": orderID,
		"error":    err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrRowLocked
	}
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new order
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	m := &model.Order{
		ItemID:        order.ItemID,
		BuyerID:       order.BuyerID,
		AmountInCents: order.AmountInCents,
		Status:        string(order.Status),
		PaidAt:        order.PaidAt,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.handleError("creating order", err, 0)
	}
	order.ID = m.ID
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uint64) (*entity.Order, error) {
	var m model.Order
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting order", err, id)
	}
	return orderModelToEntity(&m), nil
}

// GetByItem retrieves the order for an item, nil when absent
func (r *OrderRepository) GetByItem(ctx context.Context, itemID uint64) (*entity.Order, error) {
	var m model.Order
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.handleError("getting order by item", err, 0)
	}
	return orderModelToEntity(&m), nil
}

// Update persists status changes
func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     string(order.Status),
			"paid_at":    order.PaidAt,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleError("updating order", result.Error, order.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrOrderNotFound
	}
	return nil
}
