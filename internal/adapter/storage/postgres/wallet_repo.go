package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoice-wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database. A partial unique index on
// (owner_invoice_id) WHERE status = 'ACTIVE' enforces at most one live wallet
// per invoice.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, address, owner_invoice_id, mode, currency, ttl_seconds, status, created_at, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Address, w.OwnerInvoiceID, w.Mode, w.Currency,
		w.TTLSeconds, w.Status, w.CreatedAt, w.ExpiresAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT id, address, owner_invoice_id, mode, currency, ttl_seconds, status, created_at, expires_at, updated_at
		FROM wallets WHERE id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Address, &w.OwnerInvoiceID, &w.Mode, &w.Currency,
		&w.TTLSeconds, &w.Status, &w.CreatedAt, &w.ExpiresAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetActiveByInvoiceID fetches the ACTIVE wallet bound to an invoice.
func (r *WalletRepo) GetActiveByInvoiceID(ctx context.Context, invoiceID string) (*domain.Wallet, error) {
	query := `SELECT id, address, owner_invoice_id, mode, currency, ttl_seconds, status, created_at, expires_at, updated_at
		FROM wallets WHERE owner_invoice_id = $1 AND status = 'ACTIVE'`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, invoiceID).Scan(
		&w.ID, &w.Address, &w.OwnerInvoiceID, &w.Mode, &w.Currency,
		&w.TTLSeconds, &w.Status, &w.CreatedAt, &w.ExpiresAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active wallet by invoice: %w", err)
	}
	return w, nil
}

// TransitionStatus applies a guarded state change. The WHERE clause on the
// current status makes concurrent transitions last-writer-loses: only one
// caller observes applied = true.
func (r *WalletRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.WalletStatus) (bool, error) {
	query := `UPDATE wallets SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	tag, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("transition wallet status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExpireDue bulk-expires ephemeral ACTIVE wallets whose deadline passed.
func (r *WalletRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE wallets SET status = 'EXPIRED', updated_at = NOW()
		WHERE mode = 'ephemeral' AND status = 'ACTIVE' AND expires_at <= $1`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("expire due wallets: %w", err)
	}
	return tag.RowsAffected(), nil
}
