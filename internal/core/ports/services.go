package ports

import (
	"context"
	"time"

	"invoice-wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HealthSnapshot is a point-in-time copy of the provider health table.
// Readers get eventual consistency; a provider may fail right after being
// reported healthy, which the orchestrator's fallback loop absorbs.
type HealthSnapshot map[string]domain.HealthStatus

// HealthMonitor owns the provider health table. No other component writes it.
type HealthMonitor interface {
	// CheckAll probes every registered provider once and returns the updated table.
	CheckAll(ctx context.Context) HealthSnapshot
	// Snapshot returns a copy of the current table without probing.
	Snapshot() HealthSnapshot
	IsHealthy(name string) bool
	Latency(name string) time.Duration
}

// ProviderSelector ranks providers for an operation. Selection is a pure
// function of the snapshot passed in; it never mutates health or wallet state.
type ProviderSelector interface {
	// Rank returns provider names ordered by ascending priority, unhealthy
	// providers removed, latency breaking priority ties.
	Rank(health HealthSnapshot) []string
	// SelectNext returns the best-ranked provider not in the exclusion set,
	// or apperror PRV_002 when none remains.
	SelectNext(excluded []string, health HealthSnapshot) (string, error)
}

// WalletRequest holds validated input for wallet provisioning.
type WalletRequest struct {
	InvoiceID  string
	Mode       domain.WalletMode
	TTLSeconds *int64 // ephemeral only; nil = default TTL
	Currency   string
}

// WalletLifecycle manages invoice wallet state transitions.
type WalletLifecycle interface {
	// GetOrCreate returns the invoice's ACTIVE wallet, creating one through
	// the supplied provider if none exists. Idempotent per invoice id.
	GetOrCreate(ctx context.Context, req WalletRequest, provider RailProvider) (*domain.Wallet, error)
	// Touch lazily evaluates TTL expiry and returns the current wallet state.
	// Every mutating operation must go through Touch first.
	Touch(ctx context.Context, w *domain.Wallet) (*domain.Wallet, error)
	// Deactivate transitions ACTIVE -> INACTIVE. Terminal wallets fail with WAL_003.
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	// Get fetches a wallet by id, applying lazy expiry.
	Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
}

// ReserveLedger proves 1:1 fiat backing of minted tokens.
type ReserveLedger interface {
	// RecordMint must only be called for a mint already confirmed by a
	// provider, inside the same transaction as the issuance record.
	RecordMint(ctx context.Context, tx pgx.Tx, currency string, fiatAmount, tokenAmount int64) (*domain.ReserveAccount, error)
	Snapshot(ctx context.Context, currency string) (*domain.ReserveAccount, error)
	List(ctx context.Context) ([]domain.ReserveAccount, error)
}

// IssuanceRequest holds validated input for the orchestrator.
type IssuanceRequest struct {
	InvoiceID   string
	ReferenceID string // caller-supplied idempotency scope within the invoice
	Amount      int64  // minor units
	Currency    string
	Mode        domain.WalletMode
	TTLSeconds  *int64
}

// IssuanceResult is what a successful Issue returns to the boundary.
type IssuanceResult struct {
	Record  *domain.IssuanceRecord `json:"record"`
	Wallet  *domain.Wallet         `json:"wallet"`
	Reserve *domain.ReserveAccount `json:"reserve,omitempty"`
}

// IssuanceOrchestrator is the engine façade: wallet provisioning, provider
// failover, and the atomic record+reserve commit.
type IssuanceOrchestrator interface {
	Issue(ctx context.Context, req IssuanceRequest) (*IssuanceResult, error)
}
