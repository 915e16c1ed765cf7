package persistence

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
)

// LedgerRepository defines methods to interact with the hash-chain ledger.
// Blocks are append-only; there are no update or delete methods.
type LedgerRepository interface {
	// GetTailForUpdate returns the highest-index block with a row lock, or
	// nil without error when the chain is empty. Must be called inside a
	// transaction; the lock serializes concurrent appends.
	GetTailForUpdate(ctx context.Context) (*entity.LedgerBlock, error)

	// Append persists a new block. The unique index on the block index turns
	// a lost append race into a retryable constraint error.
	//
	// Possible errors:
	// - ErrConstraintViolation: If another transaction appended the same index
	Append(ctx context.Context, block *entity.LedgerBlock) error

	// List returns blocks ordered by index ascending, starting at fromIndex,
	// up to limit blocks (limit <= 0 means no limit)
	List(ctx context.Context, fromIndex uint64, limit int) ([]*entity.LedgerBlock, error)

	// Count returns the chain length
	Count(ctx context.Context) (uint64, error)
}
