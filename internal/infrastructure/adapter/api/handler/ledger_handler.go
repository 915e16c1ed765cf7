package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	ledgerUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/ledger"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

const defaultExportLimit = 100

// LedgerHandler handles audit ledger HTTP requests
type LedgerHandler struct {
	ledgerService *ledgerUseCase.Service
	logger        coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledgerService *ledgerUseCase.Service, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Export handles the GET /ledger endpoint
func (h *LedgerHandler) Export(c *gin.Context) {
	fromIndex, _ := strconv.ParseUint(c.DefaultQuery("from", "0"), 10, 64)
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultExportLimit)))
	if err != nil || limit <= 0 {
		limit = defaultExportLimit
	}

	blocks, err := h.ledgerService.Export(c.Request.Context(), fromIndex, limit)
	if err != nil {
		h.logger.Error("Error exporting ledger", map[string]any{
			"from":  fromIndex,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	resp := dto.LedgerExportResponse{
		Blocks: make([]dto.LedgerBlockResponse, 0, len(blocks)),
		Count:  len(blocks),
	}
	for _, block := range blocks {
		resp.Blocks = append(resp.Blocks, dto.LedgerBlockResponse{
			Index:        block.Index,
			PreviousHash: block.PreviousHash,
			Payload:      block.Payload,
			Hash:         block.Hash,
			CreatedAt:    block.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Verify handles the GET /ledger/verify endpoint
func (h *LedgerHandler) Verify(c *gin.Context) {
	valid, height, err := h.ledgerService.Verify(c.Request.Context())
	if err != nil {
		h.logger.Error("Error verifying ledger", map[string]any{
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LedgerVerifyResponse{
		Valid:  valid,
		Height: height,
	})
}
