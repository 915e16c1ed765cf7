package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerr "github.com/pushpendr-7/auction-engine/internal/domain/error"
	"github.com/pushpendr-7/auction-engine/internal/infrastructure/adapter/api/dto"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsContentionError(err),
		errors.Is(err, domainerr.ErrSeatAlreadyBooked),
		errors.Is(err, domainerr.ErrNoSeatsAvailable),
		errors.Is(err, domainerr.ErrAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrNotItemOwner):
		return http.StatusForbidden
	case errors.Is(err, domainerr.ErrAuctionNotEnded),
		errors.Is(err, domainerr.ErrBuyNowUnavailable),
		errors.Is(err, domainerr.ErrUnbookWindowClosed):
		return http.StatusUnprocessableEntity
	case domainerr.IsValidationError(err),
		errors.Is(err, domainerr.ErrInvalidBookingCode),
		errors.Is(err, domainerr.ErrInvalidRequest),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidItemID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a standardized error response
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// parseIDParam parses a path parameter as an unsigned integer ID
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid " + name + " format",
		})
		return 0, false
	}
	return id, true
}
