package entity

import (
	"time"

	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
)

// Wallet represents a user's single-currency balance. There is exactly one
// wallet per user; it is created lazily with a zero balance the first time
// the user touches money.
type Wallet struct {
	UserID uint64 // Wallet owner; also the primary key
	// Balance stored in cents to avoid floating point precision issues (private).
	// Never negative. Active holds are tracked separately and subtracted when
	// computing the available balance.
	balance int64
	// AutoDebitConsent allows settlement to simulate an out-of-band bank debit
	// when the wallet cannot cover the winning hold
	AutoDebitConsent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewWallet creates a new empty wallet for the given user
func NewWallet(userID uint64, timeProvider coreport.TimeProvider) (*Wallet, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &Wallet{
		UserID:    userID,
		balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents (for internal use)
func (w *Wallet) Balance() int64 {
	return w.balance
}

// GetBalance returns the balance as a string with 2 decimal places
func (w *Wallet) GetBalance() string {
	return AmountInCentsToString(w.balance)
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (w *Wallet) SetBalance(balanceInCents int64, timeProvider coreport.TimeProvider) {
	w.balance = balanceInCents
	w.UpdatedAt = timeProvider.Now()
}

// Credit adds the amount to the balance
func (w *Wallet) Credit(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if amountInCents < 0 {
		return errs.ErrNegativeAmount
	}
	w.balance += amountInCents
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// Debit subtracts the amount from the balance if sufficient balance exists.
// Returns ErrInsufficientWalletBalance otherwise; the balance never goes negative.
func (w *Wallet) Debit(amountInCents int64, timeProvider coreport.TimeProvider) error {
	if amountInCents < 0 {
		return errs.ErrNegativeAmount
	}
	if w.balance < amountInCents {
		return errs.ErrInsufficientWalletBalance
	}
	w.balance -= amountInCents
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// AvailableBalance returns the balance minus the given total of active holds,
// floored at zero
func (w *Wallet) AvailableBalance(activeHoldsTotal int64) int64 {
	available := w.balance - activeHoldsTotal
	if available < 0 {
		return 0
	}
	return available
}

// TransactionKind classifies a wallet-affecting event
type TransactionKind string

// Wallet transaction kinds
const (
	KindCredit      TransactionKind = "credit"
	KindDebit       TransactionKind = "debit"
	KindHoldReserve TransactionKind = "hold_reserve"
	KindHoldRelease TransactionKind = "hold_release"
	KindHoldConsume TransactionKind = "hold_consume"
)

// IsValidTransactionKind validates if the kind is one of the allowed values
func IsValidTransactionKind(kind string) bool {
	switch TransactionKind(kind) {
	case KindCredit, KindDebit, KindHoldReserve, KindHoldRelease, KindHoldConsume:
		return true
	default:
		return false
	}
}

// WalletTransaction is an immutable audit row recorded for every
// wallet-affecting event. Rows are append-only per wallet and never mutated
// after creation.
type WalletTransaction struct {
	ID            uint64
	UserID        uint64
	ItemID        uint64 // 0 when the event is not tied to an item (e.g. recharge)
	PaymentID     uint64 // 0 when the event is not tied to a payment
	Kind          TransactionKind
	AmountInCents int64
	// BalanceAfter snapshots the wallet balance right after the event
	BalanceAfter int64
	CreatedAt    time.Time
}

// NewWalletTransaction creates a new audit row with basic validation
func NewWalletTransaction(
	userID uint64,
	kind TransactionKind,
	amountInCents int64,
	balanceAfter int64,
	timeProvider coreport.TimeProvider,
) (*WalletTransaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amountInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}
	if !IsValidTransactionKind(string(kind)) {
		return nil, errs.ErrInvalidRequest
	}

	return &WalletTransaction{
		UserID:        userID,
		Kind:          kind,
		AmountInCents: amountInCents,
		BalanceAfter:  balanceAfter,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// WithItem ties the audit row to an auction item
func (t *WalletTransaction) WithItem(itemID uint64) *WalletTransaction {
	t.ItemID = itemID
	return t
}

// WithPayment ties the audit row to a payment
func (t *WalletTransaction) WithPayment(paymentID uint64) *WalletTransaction {
	t.PaymentID = paymentID
	return t
}
