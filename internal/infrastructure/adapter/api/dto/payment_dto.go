package dto

// RechargeRequest represents the API request for a wallet recharge
type RechargeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// PaymentResponse represents the API response for a created payment
type PaymentResponse struct {
	PaymentID     uint64 `json:"paymentId"`
	TransactionID string `json:"transactionId"`
	Purpose       string `json:"purpose"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
}

// EffectsResponse represents the API response for applying payment effects
type EffectsResponse struct {
	PaymentID uint64 `json:"paymentId"`
	Applied   bool   `json:"applied"`
}

// FailResponse represents the API response for a provider failure callback
type FailResponse struct {
	PaymentID uint64 `json:"paymentId"`
	Failed    bool   `json:"failed"`
}
