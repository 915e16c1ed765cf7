package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/domain/port/persistence"
)

// verifyBatchSize is how many blocks Verify loads per page
const verifyBatchSize = 500

// Service manages the append-only hash-chain ledger
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new ledger service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Append writes the next block of the chain inside the caller's transaction.
// The tail row lock serializes concurrent appends; if two transactions race
// past it anyway, the unique index on the block index rejects the loser with
// a retryable constraint error.
func (s *Service) Append(ctx context.Context, payload map[string]any) (*entity.LedgerBlock, error) {
	repo := s.uow.GetLedgerRepository(ctx)

	tail, err := repo.GetTailForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger tail: %w", err)
	}

	block, err := entity.NewLedgerBlock(tail, payload, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := repo.Append(ctx, block); err != nil {
		if errors.Is(err, errs.ErrConstraintViolation) {
			s.logger.Warn("Ledger append lost an index race", map[string]any{
				"index": block.Index,
			})
		}
		return nil, err
	}

	s.logger.Debug("Ledger block appended", map[string]any{
		"index": block.Index,
		"hash":  block.Hash,
	})
	return block, nil
}

// Verify recomputes the whole chain from block 0. Returns ok=false and the
// index of the first bad block when verification fails; the error return is
// reserved for infrastructure failures.
func (s *Service) Verify(ctx context.Context) (bool, uint64, error) {
	repo := s.uow.GetLedgerRepository(ctx)

	var prev *entity.LedgerBlock
	from := uint64(0)
	for {
		blocks, err := repo.List(ctx, from, verifyBatchSize)
		if err != nil {
			return false, 0, fmt.Errorf("failed to load ledger blocks: %w", err)
		}
		if len(blocks) == 0 {
			break
		}

		for _, block := range blocks {
			if err := block.VerifyLink(prev); err != nil {
				s.logger.Error("Ledger chain verification failed", map[string]any{
					"index": block.Index,
					"error": err.Error(),
				})
				return false, block.Index, nil
			}
			prev = block
		}

		from = prev.Index + 1
		if len(blocks) < verifyBatchSize {
			break
		}
	}

	return true, 0, nil
}

// Export returns blocks ordered by index for external audit
func (s *Service) Export(ctx context.Context, fromIndex uint64, limit int) ([]*entity.LedgerBlock, error) {
	blocks, err := s.uow.GetLedgerRepository(ctx).List(ctx, fromIndex, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to export ledger blocks: %w", err)
	}
	return blocks, nil
}

// Count returns the chain length
func (s *Service) Count(ctx context.Context) (uint64, error) {
	return s.uow.GetLedgerRepository(ctx).Count(ctx)
}
