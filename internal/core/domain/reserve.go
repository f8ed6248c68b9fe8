package domain

import "time"

// ReserveStatus reports whether minted tokens are fully fiat-backed.
type ReserveStatus string

const (
	ReserveStatusHealthy ReserveStatus = "HEALTHY"
	ReserveStatusDeficit ReserveStatus = "DEFICIT"
)

// ReserveAccount tracks, per currency, custodied fiat against minted tokens.
// Amounts are integer minor units; the backing comparison is exact integer
// arithmetic and the float ratio exists for display only.
type ReserveAccount struct {
	Currency          string    `json:"currency"`
	TotalFiatReserved int64     `json:"total_fiat_reserved"`
	TotalTokensMinted int64     `json:"total_tokens_minted"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Ratio returns fiat reserved divided by tokens minted, defined as 1.0 when
// nothing has been minted.
func (a *ReserveAccount) Ratio() float64 {
	if a.TotalTokensMinted == 0 {
		return 1.0
	}
	return float64(a.TotalFiatReserved) / float64(a.TotalTokensMinted)
}

// Status is HEALTHY iff every minted token is backed 1:1.
func (a *ReserveAccount) Status() ReserveStatus {
	if a.TotalTokensMinted == 0 || a.TotalFiatReserved >= a.TotalTokensMinted {
		return ReserveStatusHealthy
	}
	return ReserveStatusDeficit
}
