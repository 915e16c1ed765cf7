package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	domainerr "github.com/pushpendr-7/auction-engine/internal/domain/error"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	settlementUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/settlement"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

// SettlementHandler handles settlement and payment HTTP requests
type SettlementHandler struct {
	settlementService *settlementUseCase.Service
	logger            coreport.Logger
}

// NewSettlementHandler creates a new settlement handler instance
func NewSettlementHandler(settlementService *settlementUseCase.Service, logger coreport.Logger) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		logger:            logger,
	}
}

// Settle handles the POST /items/{itemId}/settle endpoint
func (h *SettlementHandler) Settle(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	settled, err := h.settlementService.Settle(c.Request.Context(), itemID)
	if err != nil {
		h.logger.Warn("Settlement rejected", map[string]any{
			"item_id": itemID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettleResponse{
		ItemID:  itemID,
		Settled: settled,
	})
}

// BuyNow handles the POST /items/{itemId}/buy-now endpoint
func (h *SettlementHandler) BuyNow(c *gin.Context) {
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

	payment, err := h.settlementService.BuyNow(c.Request.Context(), itemID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, paymentToResponse(payment))
}

// Recharge handles the POST /user/{userId}/recharge endpoint
func (h *SettlementHandler) Recharge(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req dto.RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	payment, err := h.settlementService.Recharge(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, paymentToResponse(payment))
}

// ApplyEffects handles the POST /payments/{paymentId}/effects endpoint
func (h *SettlementHandler) ApplyEffects(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}

	applied, err := h.settlementService.ApplyPaymentEffects(c.Request.Context(), paymentID)
	if err != nil {
		h.logger.Warn("Payment effects rejected", map[string]any{
			"payment_id": paymentID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EffectsResponse{
		PaymentID: paymentID,
		Applied:   applied,
	})
}

// FailPayment handles the POST /payments/{paymentId}/fail endpoint
func (h *SettlementHandler) FailPayment(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}

	failed, err := h.settlementService.FailPayment(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FailResponse{
		PaymentID: paymentID,
		Failed:    failed,
	})
}

func paymentToResponse(payment *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		PaymentID:     payment.ID,
		TransactionID: payment.TransactionID,
		Purpose:       string(payment.Purpose),
		Amount:        entity.AmountInCentsToString(payment.AmountInCents),
		Status:        string(payment.Status),
	}
}
