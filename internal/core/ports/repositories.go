package ports

import (
	"context"
	"time"

	"invoice-wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for invoice wallets.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	// GetActiveByInvoiceID returns the ACTIVE wallet bound to an invoice,
	// or nil if none exists.
	GetActiveByInvoiceID(ctx context.Context, invoiceID string) (*domain.Wallet, error)
	// TransitionStatus applies a guarded state change. Returns false when the
	// wallet was not in the expected `from` state (no row updated).
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.WalletStatus) (bool, error)
	// ExpireDue bulk-expires ephemeral ACTIVE wallets whose TTL elapsed.
	// Bookkeeping only; Touch remains the authoritative lazy check.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// IssuanceRepository defines persistence for issuance records.
// Methods accepting pgx.Tx are used inside the orchestrator's atomic unit.
type IssuanceRepository interface {
	Create(ctx context.Context, tx pgx.Tx, rec *domain.IssuanceRecord) error
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.IssuanceRecord, error)
	ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]domain.IssuanceRecord, error)
}

// ReserveRepository defines persistence for per-currency reserve accounts.
type ReserveRepository interface {
	// ApplyMint atomically increments fiat reserved and tokens minted for a
	// currency, creating the row on first use, and returns the updated account.
	// Must be called inside the same transaction as the issuance record insert.
	ApplyMint(ctx context.Context, tx pgx.Tx, currency string, fiatAmount, tokenAmount int64) (*domain.ReserveAccount, error)
	Get(ctx context.Context, currency string) (*domain.ReserveAccount, error)
	List(ctx context.Context) ([]domain.ReserveAccount, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IssuanceCache is the Redis-layer idempotency check for issuance requests.
type IssuanceCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached result JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
