package postgres

import (
	"context"
	"errors"
	"fmt"

	"invoice-wallet-engine/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ReserveRepo implements ports.ReserveRepository.
type ReserveRepo struct {
	pool Pool
}

// NewReserveRepo creates a new ReserveRepo.
func NewReserveRepo(pool Pool) *ReserveRepo {
	return &ReserveRepo{pool: pool}
}

// ApplyMint upserts the currency row and increments both totals in one
// statement. Concurrent mints on the same currency serialize on the row lock,
// so the returned totals are always consistent with each other.
func (r *ReserveRepo) ApplyMint(ctx context.Context, tx pgx.Tx, currency string, fiatAmount, tokenAmount int64) (*domain.ReserveAccount, error) {
	query := `INSERT INTO reserve_accounts (currency, total_fiat_reserved, total_tokens_minted, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (currency) DO UPDATE SET
			total_fiat_reserved = reserve_accounts.total_fiat_reserved + EXCLUDED.total_fiat_reserved,
			total_tokens_minted = reserve_accounts.total_tokens_minted + EXCLUDED.total_tokens_minted,
			updated_at = NOW()
		RETURNING currency, total_fiat_reserved, total_tokens_minted, updated_at`

	acct := &domain.ReserveAccount{}
	err := tx.QueryRow(ctx, query, currency, fiatAmount, tokenAmount).Scan(
		&acct.Currency, &acct.TotalFiatReserved, &acct.TotalTokensMinted, &acct.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("apply mint to reserve: %w", err)
	}
	return acct, nil
}

// Get fetches the reserve account for a currency, nil if untracked.
func (r *ReserveRepo) Get(ctx context.Context, currency string) (*domain.ReserveAccount, error) {
	query := `SELECT currency, total_fiat_reserved, total_tokens_minted, updated_at
		FROM reserve_accounts WHERE currency = $1`

	acct := &domain.ReserveAccount{}
	err := r.pool.QueryRow(ctx, query, currency).Scan(
		&acct.Currency, &acct.TotalFiatReserved, &acct.TotalTokensMinted, &acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserve account: %w", err)
	}
	return acct, nil
}

// List fetches every tracked reserve account ordered by currency.
func (r *ReserveRepo) List(ctx context.Context) ([]domain.ReserveAccount, error) {
	query := `SELECT currency, total_fiat_reserved, total_tokens_minted, updated_at
		FROM reserve_accounts ORDER BY currency`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reserve accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.ReserveAccount
	for rows.Next() {
		var acct domain.ReserveAccount
		if err := rows.Scan(&acct.Currency, &acct.TotalFiatReserved, &acct.TotalTokensMinted, &acct.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reserve account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reserve accounts: %w", err)
	}
	return accounts, nil
}
