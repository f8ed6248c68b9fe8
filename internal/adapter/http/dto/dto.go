package dto

// IssuanceRequest is the request body for token issuance. The wallet mode
// comes from the URL path, not the body.
type IssuanceRequest struct {
	InvoiceID   string `json:"invoice_id" binding:"required,max=100"`
	ReferenceID string `json:"reference_id" binding:"omitempty,max=100"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	TTLSeconds  *int64 `json:"ttl_seconds,omitempty" binding:"omitempty,gt=0"`
}

// WalletResponse is the wallet representation returned to callers.
type WalletResponse struct {
	ID             string  `json:"id"`
	Address        string  `json:"address"`
	OwnerInvoiceID string  `json:"owner_invoice_id"`
	Mode           string  `json:"mode"`
	Currency       string  `json:"currency"`
	TTLSeconds     *int64  `json:"ttl_seconds,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	ExpiresAt      *string `json:"expires_at,omitempty"`
}

// MintAttemptResponse is one entry of an issuance's provider attempt trail.
type MintAttemptResponse struct {
	Provider    string `json:"provider"`
	Outcome     string `json:"outcome"`
	ErrorKind   string `json:"error_kind,omitempty"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// IssuanceRecordResponse is the issuance record representation.
type IssuanceRecordResponse struct {
	TransactionID string                `json:"transaction_id"`
	WalletID      string                `json:"wallet_id"`
	Provider      string                `json:"provider,omitempty"`
	Amount        int64                 `json:"amount"`
	Currency      string                `json:"currency"`
	Status        string                `json:"status"`
	Attempts      []MintAttemptResponse `json:"attempts"`
	CreatedAt     string                `json:"created_at"`
}

// ReserveResponse is the per-currency reserve account representation.
type ReserveResponse struct {
	Currency          string  `json:"currency"`
	TotalFiatReserved int64   `json:"total_fiat_reserved"`
	TotalTokensMinted int64   `json:"total_tokens_minted"`
	Ratio             float64 `json:"ratio"`
	Status            string  `json:"status"`
}

// IssuanceResponse is the response body for a successful issuance. The
// headline fields are duplicated at the top level for callers that only care
// about the outcome; record/wallet/reserve carry the full detail.
type IssuanceResponse struct {
	WalletAddress string   `json:"wallet_address"`
	TransactionID string   `json:"transaction_id"`
	Provider      string   `json:"provider"`
	ReserveRatio  *float64 `json:"reserve_ratio,omitempty"`

	Record  IssuanceRecordResponse `json:"record"`
	Wallet  WalletResponse         `json:"wallet"`
	Reserve *ReserveResponse       `json:"reserve,omitempty"`
}

// WalletDetailResponse is the wallet plus its issuance history.
type WalletDetailResponse struct {
	Wallet    WalletResponse           `json:"wallet"`
	Issuances []IssuanceRecordResponse `json:"issuances"`
}

// ProviderHealthResponse is one provider's health entry.
type ProviderHealthResponse struct {
	Provider      string `json:"provider"`
	Healthy       bool   `json:"healthy"`
	LatencyMs     int64  `json:"latency_ms"`
	LastCheckedAt string `json:"last_checked_at,omitempty"`
	LastHealthyAt string `json:"last_healthy_at,omitempty"`
}
