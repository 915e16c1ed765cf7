package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	domainerr "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	biddingUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/bidding"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

// BidHandler handles bidding-related HTTP requests
type BidHandler struct {
	biddingService *biddingUseCase.Service
	logger         coreport.Logger
}

// NewBidHandler creates a new bid handler instance
func NewBidHandler(biddingService *biddingUseCase.Service, logger coreport.Logger) *BidHandler {
	return &BidHandler{
		biddingService: biddingService,
		logger:         logger,
	}
}

// PlaceBid handles the POST /items/{itemId}/bids endpoint
func (h *BidHandler) PlaceBid(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid bid request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	bid, err := h.biddingService.PlaceBid(c.Request.Context(), itemID, req.BidderID, req.Amount)
	if err != nil {
		h.logger.Warn("Bid rejected", map[string]any{
			"item_id":   itemID,
			"bidder_id": req.BidderID,
			"error":     err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.BidResponse{
		BidID:     bid.ID,
		ItemID:    bid.ItemID,
		BidderID:  bid.BidderID,
		Amount:    entity.AmountInCentsToString(bid.AmountInCents),
		TxID:      bid.TxID,
		CreatedAt: bid.CreatedAt.Format(time.RFC3339),
	})
}

// GetBid handles the GET /bids/{txId} endpoint
func (h *BidHandler) GetBid(c *gin.Context) {
	bid, err := h.biddingService.GetBid(c.Request.Context(), c.Param("txId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BidResponse{
		BidID:     bid.ID,
		ItemID:    bid.ItemID,
		BidderID:  bid.BidderID,
		Amount:    entity.AmountInCentsToString(bid.AmountInCents),
		TxID:      bid.TxID,
		CreatedAt: bid.CreatedAt.Format(time.RFC3339),
	})
}
