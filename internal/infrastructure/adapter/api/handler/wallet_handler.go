package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	walletUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	holds  *walletUseCase.HoldManager
	logger coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(holds *walletUseCase.HoldManager, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		holds:  holds,
		logger: logger,
	}
}

// GetBalance handles the GET /user/{userId}/balance endpoint
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	available, err := h.holds.AvailableBalance(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting available balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: entity.AmountInCentsToString(available),
	})
}
