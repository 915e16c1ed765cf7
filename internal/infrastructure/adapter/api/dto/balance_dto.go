package dto

// BalanceResponse represents the API response for an available balance query
type BalanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"`
}
