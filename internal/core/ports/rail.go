package ports

import (
	"context"
	"time"
)

// RailProvider is an external token-issuance/settlement rail (e.g. "tempo",
// "circle"). The engine is provider-agnostic beyond name and priority;
// per-provider adapters live under internal/adapter/rail and are swapped via
// configuration.
type RailProvider interface {
	// Name returns the unique provider key.
	Name() string
	// Probe issues a lightweight liveness check and returns its round-trip time.
	Probe(ctx context.Context) (time.Duration, error)
	// CreateWallet provisions a rail wallet for an invoice and returns its address.
	CreateWallet(ctx context.Context, invoiceID string) (string, error)
	// Mint issues tokens against a wallet address. Returns the rail transaction id.
	Mint(ctx context.Context, walletAddress string, amount int64, currency string) (string, error)
}
