package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	errs "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coremocks "github.com/pushpendr-7/auction-engine/mocks/port/core"
	persistencemocks "github.com/pushpendr-7/auction-engine/mocks/port/persistence"
)

func newLedgerService(t *testing.T, repo *persistencemocks.MockLedgerRepository) (*Service, *coremocks.MockTimeProvider) {
	t.Helper()
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	mockUow := new(persistencemocks.MockUnitOfWork)
	mockUow.On("GetLedgerRepository", mock.Anything).Return(repo)

	mockTime := new(coremocks.MockTimeProvider)
	mockTime.On("Now").Return(fixedTime)

	mockLogger := new(coremocks.MockLogger)
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return().Maybe()

	return NewService(mockUow, mockTime, mockLogger), mockTime
}

func buildChain(t *testing.T, mockTime *coremocks.MockTimeProvider, n int) []*entity.LedgerBlock {
	t.Helper()
	var chain []*entity.LedgerBlock
	var tail *entity.LedgerBlock
	for i := 0; i < n; i++ {
		block, err := entity.NewLedgerBlock(tail, map[string]any{"seq": i}, mockTime)
		require.NoError(t, err)
		chain = append(chain, block)
		tail = block
	}
	return chain
}

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("Genesis block on empty chain", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		service, _ := newLedgerService(t, mockRepo)

		mockRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		mockRepo.On("Append", mock.Anything, mock.MatchedBy(func(b *entity.LedgerBlock) bool {
			return b.Index == 0 && b.PreviousHash == entity.GenesisPreviousHash
		})).Return(nil)

		block, err := service.Append(ctx, map[string]any{"type": "bid_placed"})

		require.NoError(t, err)
		assert.NoError(t, block.VerifyLink(nil))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Block links to the locked tail", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		service, mockTime := newLedgerService(t, mockRepo)
		tail := buildChain(t, mockTime, 1)[0]

		mockRepo.On("GetTailForUpdate", mock.Anything).Return(tail, nil)
		mockRepo.On("Append", mock.Anything, mock.MatchedBy(func(b *entity.LedgerBlock) bool {
			return b.Index == 1 && b.PreviousHash == tail.Hash
		})).Return(nil)

		block, err := service.Append(ctx, map[string]any{"type": "order_paid"})

		require.NoError(t, err)
		assert.NoError(t, block.VerifyLink(tail))
	})

	t.Run("Lost index race surfaces the constraint error", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		service, _ := newLedgerService(t, mockRepo)

		mockRepo.On("GetTailForUpdate", mock.Anything).Return(nil, nil)
		mockRepo.On("Append", mock.Anything, mock.Anything).Return(errs.ErrConstraintViolation)

		_, err := service.Append(ctx, map[string]any{"type": "bid_placed"})

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid chain verifies", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		service, mockTime := newLedgerService(t, mockRepo)
		chain := buildChain(t, mockTime, 3)

		mockRepo.On("List", mock.Anything, uint64(0), mock.Anything).Return(chain, nil)

		ok, badIndex, err := service.Verify(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint64(0), badIndex)
	})

	t.Run("Empty chain is valid", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		service, _ := newLedgerService(t, mockRepo)

		mockRepo.On("List", mock.Anything, uint64(0), mock.Anything).Return(nil, nil)

		ok, _, err := service.Verify(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Tampered block is reported by index", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockLedgerRepository)
		service, mockTime := newLedgerService(t, mockRepo)
		chain := buildChain(t, mockTime, 3)
		chain[1].Payload = `{"seq":999}`

		mockRepo.On("List", mock.Anything, uint64(0), mock.Anything).Return(chain, nil)

		ok, badIndex, err := service.Verify(ctx)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, uint64(1), badIndex)
	})
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(persistencemocks.MockLedgerRepository)
	service, mockTime := newLedgerService(t, mockRepo)
	chain := buildChain(t, mockTime, 2)

	mockRepo.On("List", mock.Anything, uint64(0), 100).Return(chain, nil)

	blocks, err := service.Export(ctx, 0, 100)

	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestCount(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(persistencemocks.MockLedgerRepository)
	service, _ := newLedgerService(t, mockRepo)

	mockRepo.On("Count", mock.Anything).Return(uint64(42), nil)

	count, err := service.Count(ctx)

	require.NoError(t, err)
	assert.Equal(t, uint64(42), count)
}
