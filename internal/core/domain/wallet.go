package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletMode distinguishes time-limited wallets from long-lived ones.
type WalletMode string

const (
	WalletModeEphemeral  WalletMode = "ephemeral"
	WalletModePersistent WalletMode = "persistent"
)

// ParseWalletMode validates a mode string coming in over the API boundary.
// Unknown modes are rejected, never defaulted.
func ParseWalletMode(s string) (WalletMode, bool) {
	switch WalletMode(s) {
	case WalletModeEphemeral, WalletModePersistent:
		return WalletMode(s), true
	}
	return "", false
}

// WalletStatus represents the lifecycle state of an invoice wallet.
type WalletStatus string

const (
	WalletStatusActive   WalletStatus = "ACTIVE"
	WalletStatusExpired  WalletStatus = "EXPIRED"
	WalletStatusInactive WalletStatus = "INACTIVE"
)

// DefaultEphemeralTTL applies when an ephemeral wallet is requested without
// an explicit TTL.
const DefaultEphemeralTTL = 30 * 24 * time.Hour

// Wallet is a purpose-bound wallet minted against a single invoice.
// The address is issued by the rail provider at creation; the engine never
// derives addresses itself.
type Wallet struct {
	ID             uuid.UUID    `json:"id"`
	Address        string       `json:"address"`
	OwnerInvoiceID string       `json:"owner_invoice_id"`
	Mode           WalletMode   `json:"mode"`
	Currency       string       `json:"currency"`
	TTLSeconds     *int64       `json:"ttl_seconds,omitempty"` // ephemeral only
	Status         WalletStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"` // nil for persistent
	UpdatedAt      time.Time    `json:"updated_at"`
}

// IsTerminal returns true once the wallet can no longer transition.
func (w *Wallet) IsTerminal() bool {
	return w.Status == WalletStatusExpired || w.Status == WalletStatusInactive
}

// IsExpiredAt reports whether an ephemeral wallet's TTL has elapsed.
func (w *Wallet) IsExpiredAt(now time.Time) bool {
	return w.Mode == WalletModeEphemeral && w.ExpiresAt != nil && now.After(*w.ExpiresAt)
}
