package dto

// BidRequest represents the API request for placing a bid
type BidRequest struct {
	BidderID uint64 `json:"bidderId" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
}

// BidResponse represents the API response for a placed bid
type BidResponse struct {
	BidID     uint64 `json:"bidId"`
	ItemID    uint64 `json:"itemId"`
	BidderID  uint64 `json:"bidderId"`
	Amount    string `json:"amount"`
	TxID      string `json:"txId"`
	CreatedAt string `json:"createdAt"`
}

// SettleResponse represents the API response for a settlement request
type SettleResponse struct {
	ItemID  uint64 `json:"itemId"`
	Settled bool   `json:"settled"`
}
