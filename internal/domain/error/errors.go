package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeConstraintViolation = 4005
	CodeAmountOverflow      = 4006
	CodeOwnerCannotBid      = 4101
	CodeBiddingClosed       = 4102
	CodeSeatNotBooked       = 4103
	CodePenaltyDue          = 4104
	CodeInsufficientBidders = 4105
	CodeBidTooLow           = 4106
	CodeBidUnreasonablyHigh = 4107
	CodeInsufficientFunds   = 4108
	CodeNoActiveHold        = 4109
	CodeInsufficientWallet  = 4110
	CodeDuplicateHold       = 4111
	CodeSeatAlreadyBooked   = 4112
	CodeNoSeatsAvailable    = 4113
	CodeAlreadySettled      = 4114
	CodeAuctionNotEnded     = 4115
	CodeBuyNowUnavailable   = 4116
	CodeUnbookWindowClosed  = 4117
	CodeInvalidBookingCode  = 4118
	CodeNotItemOwner        = 4119
	CodeItemNotFound        = 4041
	CodeUserNotFound        = 4040
	CodePaymentNotFound     = 4042
	CodeOrderNotFound       = 4043
	CodeRowLocked           = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeLedgerBroken   = 5001
)

// Base error types
var (
	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidItemID is returned when the item ID is not a positive integer
	ErrInvalidItemID = errors.New("item ID must be positive")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrOwnerCannotBid is returned when an item owner tries to bid on their own item
	ErrOwnerCannotBid = errors.New("item owner cannot bid on their own item")

	// ErrBiddingClosed is returned when the item is inactive, settled, outside its
	// bidding window, or outside market hours
	ErrBiddingClosed = errors.New("bidding is closed for this item")

	// ErrSeatNotBooked is returned when the bidder has no active seat booking
	ErrSeatNotBooked = errors.New("seat not booked for this auction")

	// ErrPenaltyDue is returned when the bidder has an outstanding penalty
	ErrPenaltyDue = errors.New("outstanding penalty must be paid before bidding")

	// ErrInsufficientParticipants is returned when fewer than two seats are booked
	ErrInsufficientParticipants = errors.New("auction requires at least two booked participants")

	// ErrBidTooLow is returned when the bid does not meet the required minimum
	ErrBidTooLow = errors.New("bid amount is below the required minimum")

	// ErrBidUnreasonablyHigh is returned when the bid exceeds the sanity ceiling
	ErrBidUnreasonablyHigh = errors.New("bid amount exceeds the maximum allowed")

	// ErrInsufficientFunds is returned when the available balance cannot cover the hold
	ErrInsufficientFunds = errors.New("insufficient available balance")

	// ErrNoActiveHold is returned when consuming a hold that does not exist
	ErrNoActiveHold = errors.New("no active hold for this user and item")

	// ErrInsufficientWalletBalance is returned when an operation would drive the
	// wallet balance negative
	ErrInsufficientWalletBalance = errors.New("insufficient wallet balance")

	// ErrDuplicateHold is returned when a second active hold is attempted for the
	// same user and item
	ErrDuplicateHold = errors.New("active hold already exists for this user and item")

	// ErrSeatAlreadyBooked is returned when the user already holds a seat for the item
	ErrSeatAlreadyBooked = errors.New("seat already booked for this auction")

	// ErrNoSeatsAvailable is returned when the item's seat limit is reached
	ErrNoSeatsAvailable = errors.New("no seats available for this auction")

	// ErrAlreadySettled is returned when settling an item that is already settled
	ErrAlreadySettled = errors.New("item is already settled")

	// ErrAuctionNotEnded is returned when settling an item before its end time
	ErrAuctionNotEnded = errors.New("auction has not ended yet")

	// ErrBuyNowUnavailable is returned when the item has no buy-now price
	ErrBuyNowUnavailable = errors.New("buy-now is not available for this item")

	// ErrUnbookWindowClosed is returned when unbooking after the allowed window
	ErrUnbookWindowClosed = errors.New("unbooking window has closed")

	// ErrInvalidBookingCode is returned when a booking code does not match
	ErrInvalidBookingCode = errors.New("invalid booking code")

	// ErrNotItemOwner is returned when a non-owner invokes an owner-only control
	ErrNotItemOwner = errors.New("only the item owner can perform this action")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrItemNotFound is returned when the requested item doesn't exist
	ErrItemNotFound = errors.New("item not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrPaymentNotFound is returned when the requested payment doesn't exist
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrOrderNotFound is returned when the requested order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrLedgerBroken is returned when chain verification finds a bad block
	ErrLedgerBroken = errors.New("ledger chain verification failed")

	// ErrRowLocked is returned when a row is locked by a concurrent operation
	ErrRowLocked = errors.New("row is locked by another operation")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrOwnerCannotBid):
		return CodeOwnerCannotBid
	case errors.Is(err, ErrBiddingClosed):
		return CodeBiddingClosed
	case errors.Is(err, ErrSeatNotBooked):
		return CodeSeatNotBooked
	case errors.Is(err, ErrPenaltyDue):
		return CodePenaltyDue
	case errors.Is(err, ErrInsufficientParticipants):
		return CodeInsufficientBidders
	case errors.Is(err, ErrBidTooLow):
		return CodeBidTooLow
	case errors.Is(err, ErrBidUnreasonablyHigh):
		return CodeBidUnreasonablyHigh
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrNoActiveHold):
		return CodeNoActiveHold
	case errors.Is(err, ErrInsufficientWalletBalance):
		return CodeInsufficientWallet
	case errors.Is(err, ErrDuplicateHold):
		return CodeDuplicateHold
	case errors.Is(err, ErrSeatAlreadyBooked):
		return CodeSeatAlreadyBooked
	case errors.Is(err, ErrNoSeatsAvailable):
		return CodeNoSeatsAvailable
	case errors.Is(err, ErrAlreadySettled):
		return CodeAlreadySettled
	case errors.Is(err, ErrAuctionNotEnded):
		return CodeAuctionNotEnded
	case errors.Is(err, ErrBuyNowUnavailable):
		return CodeBuyNowUnavailable
	case errors.Is(err, ErrUnbookWindowClosed):
		return CodeUnbookWindowClosed
	case errors.Is(err, ErrInvalidBookingCode):
		return CodeInvalidBookingCode
	case errors.Is(err, ErrNotItemOwner):
		return CodeNotItemOwner
	case errors.Is(err, ErrItemNotFound):
		return CodeItemNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrPaymentNotFound):
		return CodePaymentNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrRowLocked):
		return CodeRowLocked
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrLedgerBroken):
		return CodeLedgerBroken
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a hold that
// could not be reserved
type InsufficientFundsError struct {
	UserID    uint64
	ItemID    uint64
	Required  string
	Available string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d on item %d: required %s, available %s",
		e.UserID, e.ItemID, e.Required, e.Available)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID,
		"item_id":    e.ItemID,
		"required":   e.Required,
		"available":  e.Available,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID, itemID uint64, required, available string) error {
	return &InsufficientFundsError{
		UserID:    userID,
		ItemID:    itemID,
		Required:  required,
		Available: available,
	}
}

// BidTooLowError provides detailed information for a rejected low bid
type BidTooLowError struct {
	ItemID   uint64
	BidderID uint64
	Amount   string
	Minimum  string
}

// Error implements the error interface
func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid of %s on item %d is below the minimum %s",
		e.Amount, e.ItemID, e.Minimum)
}

// Is checks if the target error is an ErrBidTooLow
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}

// LogFields returns a map of fields for structured logging
func (e *BidTooLowError) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"error_type": "bid_too_low",
		"item_id":    e.ItemID,
		"bidder_id":  e.BidderID,
		"amount":     e.Amount,
		"minimum":    e.Minimum,
		"error_code": CodeBidTooLow,
	}
}

// NewBidTooLowError creates a new detailed bid-too-low error
func NewBidTooLowError(itemID, bidderID uint64, amount, minimum string) error {
	return &BidTooLowError{
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   amount,
		Minimum:  minimum,
	}
}

// SettlementError represents an error during auction settlement
type SettlementError struct {
	ItemID   uint64
	WinnerID uint64
	Amount   string
	Reason   string
	Err      error
}

// Error implements the error interface for SettlementError
func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement error for item %d (winner: %d, amount: %s): %s - %v",
		e.ItemID, e.WinnerID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SettlementError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "settlement_error",
		"item_id":    e.ItemID,
		"winner_id":  e.WinnerID,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewSettlementError creates a detailed settlement error
func NewSettlementError(itemID, winnerID uint64, amount, reason string, err error) error {
	return &SettlementError{
		ItemID:   itemID,
		WinnerID: winnerID,
		Amount:   amount,
		Reason:   reason,
		Err:      err,
	}
}

// IsValidationError checks if the error is a pre-transaction validation failure
// that must never be retried
func IsValidationError(err error) bool {
	return errors.Is(err, ErrOwnerCannotBid) ||
		errors.Is(err, ErrBiddingClosed) ||
		errors.Is(err, ErrSeatNotBooked) ||
		errors.Is(err, ErrPenaltyDue) ||
		errors.Is(err, ErrInsufficientParticipants) ||
		errors.Is(err, ErrBidTooLow) ||
		errors.Is(err, ErrBidUnreasonablyHigh) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrAmountOverflow)
}

// IsContentionError checks if the error is retryable lock/constraint contention
func IsContentionError(err error) bool {
	return errors.Is(err, ErrRowLocked) ||
		errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, ErrDuplicateHold)
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
