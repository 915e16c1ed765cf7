package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	domainerr "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	biddingUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/bidding"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

// SeatHandler handles seat booking and presence HTTP requests
type SeatHandler struct {
	biddingService *biddingUseCase.Service
	logger         coreport.Logger
}

// NewSeatHandler creates a new seat handler instance
func NewSeatHandler(biddingService *biddingUseCase.Service, logger coreport.Logger) *SeatHandler {
	return &SeatHandler{
		biddingService: biddingService,
		logger:         logger,
	}
}

// BookSeat handles the POST /items/{itemId}/seat endpoint
func (h *SeatHandler) BookSeat(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.SeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	payment, err := h.biddingService.BookSeat(c.Request.Context(), itemID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SeatResponse{
		ItemID:    itemID,
		UserID:    req.UserID,
		PaymentID: payment.ID,
		Amount:    entity.AmountInCentsToString(payment.AmountInCents),
	})
}

// UnbookSeat handles the DELETE /items/{itemId}/seat endpoint
func (h *SeatHandler) UnbookSeat(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.SeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.biddingService.UnbookSeat(c.Request.Context(), itemID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SeatResponse{
		ItemID: itemID,
		UserID: req.UserID,
	})
}

// VerifyCode handles the POST /items/{itemId}/seat/verify endpoint
func (h *SeatHandler) VerifyCode(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.biddingService.VerifyCode(c.Request.Context(), itemID, req.UserID, req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SeatResponse{
		ItemID: itemID,
		UserID: req.UserID,
	})
}

// StartPreview handles the POST /items/{itemId}/preview endpoint
func (h *SeatHandler) StartPreview(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.OwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.biddingService.StartPreview(c.Request.Context(), itemID, req.OwnerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// StartCall handles the POST /items/{itemId}/call endpoint
func (h *SeatHandler) StartCall(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.OwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.biddingService.StartCall(c.Request.Context(), itemID, req.OwnerID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PresencePing handles the POST /items/{itemId}/presence endpoint
func (h *SeatHandler) PresencePing(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.SeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.biddingService.PresencePing(c.Request.Context(), itemID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
