package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/pushpendr-7/auction-engine/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeItem represents the auction item entity
	EntityTypeItem EntityType = "item"
	// EntityTypePayment represents the payment entity
	EntityTypePayment EntityType = "payment"
	// EntityTypeOrder represents the order entity
	EntityTypeOrder EntityType = "order"
	// EntityTypeWallet represents the wallet entity
	EntityTypeWallet EntityType = "wallet"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Check for common GORM errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	// Check for PostgreSQL specific errors
	errMsg := strings.ToLower(err.Error())

	switch {
	// Transaction and locking errors
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout"):
		return domainErr.ErrRowLocked

	// Duplicate key errors
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		if strings.Contains(errMsg, "wallet_holds") {
			return domainErr.ErrDuplicateHold
		}
		return domainErr.ErrConstraintViolation

	// Constraint violations
	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return domainErr.ErrConstraintViolation

	// Connection issues
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return domainErr.ErrDatabaseConnection

	// Timeout errors
	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)

	// Default error
	default:
		return domainErr.ErrInternalServer
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeItem:
			return domainErr.ErrItemNotFound
		case EntityTypePayment:
			return domainErr.ErrPaymentNotFound
		case EntityTypeOrder:
			return domainErr.ErrOrderNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}

// MapItemNotFoundError maps database errors to item not found errors
func (m *ErrorMapper) MapItemNotFoundError(err error) error {
	return m.MapEntityNotFoundError(err, EntityTypeItem)
}

// MapPaymentNotFoundError maps database errors to payment not found errors
func (m *ErrorMapper) MapPaymentNotFoundError(err error) error {
	return m.MapEntityNotFoundError(err, EntityTypePayment)
}
