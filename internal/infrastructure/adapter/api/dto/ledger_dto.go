package dto

// LedgerBlockResponse represents one block in the audit export
type LedgerBlockResponse struct {
	Index        uint64 `json:"index"`
	PreviousHash string `json:"previousHash"`
	Payload      string `json:"payload"`
	Hash         string `json:"hash"`
	CreatedAt    string `json:"createdAt"`
}

// LedgerExportResponse represents the API response for a ledger export
type LedgerExportResponse struct {
	Blocks []LedgerBlockResponse `json:"blocks"`
	Count  int                   `json:"count"`
}

// LedgerVerifyResponse represents the API response for a chain verification
type LedgerVerifyResponse struct {
	Valid  bool   `json:"valid"`
	Height uint64 `json:"height"`
}
