package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"invoice-wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IssuanceRepo implements ports.IssuanceRepository. The per-provider attempt
// trail is stored as a JSONB column; it is audit data, never queried by field.
type IssuanceRepo struct {
	pool Pool
}

// NewIssuanceRepo creates a new IssuanceRepo.
func NewIssuanceRepo(pool Pool) *IssuanceRepo {
	return &IssuanceRepo{pool: pool}
}

// Create inserts an issuance record within the given transaction.
func (r *IssuanceRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.IssuanceRecord) error {
	attempts, err := json.Marshal(rec.Attempts)
	if err != nil {
		return fmt.Errorf("marshal attempts: %w", err)
	}

	query := `INSERT INTO issuance_records (transaction_id, wallet_id, provider_name, amount, currency, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(ctx, query,
		rec.TransactionID, rec.WalletID, rec.ProviderName,
		rec.Amount, rec.Currency, rec.Status, attempts, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert issuance record: %w", err)
	}
	return nil
}

// GetByTransactionID fetches an issuance record by its transaction id.
func (r *IssuanceRepo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.IssuanceRecord, error) {
	query := `SELECT transaction_id, wallet_id, provider_name, amount, currency, status, attempts, created_at
		FROM issuance_records WHERE transaction_id = $1`

	rec, err := scanIssuanceRecord(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issuance record: %w", err)
	}
	return rec, nil
}

// ListByWalletID fetches a wallet's issuance records, newest first.
func (r *IssuanceRepo) ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]domain.IssuanceRecord, error) {
	query := `SELECT transaction_id, wallet_id, provider_name, amount, currency, status, attempts, created_at
		FROM issuance_records WHERE wallet_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list issuance records: %w", err)
	}
	defer rows.Close()

	var records []domain.IssuanceRecord
	for rows.Next() {
		rec, err := scanIssuanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issuance record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issuance records: %w", err)
	}
	return records, nil
}

func scanIssuanceRecord(row pgx.Row) (*domain.IssuanceRecord, error) {
	rec := &domain.IssuanceRecord{}
	var attempts []byte
	err := row.Scan(
		&rec.TransactionID, &rec.WalletID, &rec.ProviderName,
		&rec.Amount, &rec.Currency, &rec.Status, &attempts, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(attempts) > 0 {
		if err := json.Unmarshal(attempts, &rec.Attempts); err != nil {
			return nil, fmt.Errorf("unmarshal attempts: %w", err)
		}
	}
	return rec, nil
}
