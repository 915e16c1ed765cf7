package dto

// SeatRequest represents the API request for booking or unbooking a seat
type SeatRequest struct {
	UserID uint64 `json:"userId" binding:"required"`
}

// VerifyCodeRequest represents the API request for verifying a booking code
type VerifyCodeRequest struct {
	UserID uint64 `json:"userId" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// OwnerRequest represents the API request for owner-only item controls
type OwnerRequest struct {
	OwnerID uint64 `json:"ownerId" binding:"required"`
}

// SeatResponse represents the API response for a seat booking
type SeatResponse struct {
	ItemID    uint64 `json:"itemId"`
	UserID    uint64 `json:"userId"`
	PaymentID uint64 `json:"paymentId,omitempty"`
	Amount    string `json:"amount,omitempty"`
}
