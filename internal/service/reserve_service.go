package service

import (
	"context"
	"fmt"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/metrics"
	"invoice-wallet-engine/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ReserveServiceImpl implements ports.ReserveLedger.
type ReserveServiceImpl struct {
	reserveRepo ports.ReserveRepository
	log         zerolog.Logger
}

// NewReserveService creates a new ReserveServiceImpl.
func NewReserveService(reserveRepo ports.ReserveRepository, log zerolog.Logger) *ReserveServiceImpl {
	return &ReserveServiceImpl{reserveRepo: reserveRepo, log: log}
}

// RecordMint increments fiat reserved and tokens minted for a currency in one
// statement inside the caller's transaction. Callers must only invoke this
// for a mint already confirmed SUCCEEDED by a provider; there is deliberately
// no record-intent/confirm split, so the ledger never overstates backing
// while provider retries are in flight.
func (s *ReserveServiceImpl) RecordMint(ctx context.Context, tx pgx.Tx, currency string, fiatAmount, tokenAmount int64) (*domain.ReserveAccount, error) {
	if fiatAmount <= 0 || tokenAmount <= 0 {
		return nil, apperror.Validation("reserve amounts must be positive")
	}

	acct, err := s.reserveRepo.ApplyMint(ctx, tx, currency, fiatAmount, tokenAmount)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("apply mint to reserve: %w", err))
	}

	metrics.SetReserveRatio(currency, acct.Ratio())
	if acct.Status() == domain.ReserveStatusDeficit {
		s.log.Warn().
			Str("currency", currency).
			Int64("fiat_reserved", acct.TotalFiatReserved).
			Int64("tokens_minted", acct.TotalTokensMinted).
			Float64("ratio", acct.Ratio()).
			Msg("reserve account in deficit")
	}

	return acct, nil
}

// Snapshot returns the reserve account for a currency. An untracked currency
// reads as an empty account: ratio 1.0, HEALTHY.
func (s *ReserveServiceImpl) Snapshot(ctx context.Context, currency string) (*domain.ReserveAccount, error) {
	acct, err := s.reserveRepo.Get(ctx, currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get reserve account: %w", err))
	}
	if acct == nil {
		return &domain.ReserveAccount{Currency: currency}, nil
	}
	return acct, nil
}

// List returns every tracked reserve account.
func (s *ReserveServiceImpl) List(ctx context.Context) ([]domain.ReserveAccount, error) {
	accounts, err := s.reserveRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list reserve accounts: %w", err))
	}
	return accounts, nil
}
