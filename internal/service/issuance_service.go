package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/metrics"
	"invoice-wallet-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IssuanceServiceImpl implements ports.IssuanceOrchestrator. It owns the
// cross-entity transaction boundary: the issuance record and the reserve
// account mutate together or not at all.
type IssuanceServiceImpl struct {
	wallets      ports.WalletLifecycle
	selector     ports.ProviderSelector
	monitor      ports.HealthMonitor
	rails        map[string]ports.RailProvider
	issuanceRepo ports.IssuanceRepository
	reserves     ports.ReserveLedger
	transactor   ports.DBTransactor
	cache        ports.IssuanceCache

	maxAttempts    int
	mintTimeout    time.Duration
	idempotencyTTL time.Duration

	log zerolog.Logger
	now func() time.Time
}

// NewIssuanceService creates a new IssuanceServiceImpl.
// maxAttempts <= 0 means one attempt per registered provider.
func NewIssuanceService(
	wallets ports.WalletLifecycle,
	selector ports.ProviderSelector,
	monitor ports.HealthMonitor,
	rails map[string]ports.RailProvider,
	issuanceRepo ports.IssuanceRepository,
	reserves ports.ReserveLedger,
	transactor ports.DBTransactor,
	cache ports.IssuanceCache,
	maxAttempts int,
	mintTimeout time.Duration,
	idempotencyTTL time.Duration,
	log zerolog.Logger,
) *IssuanceServiceImpl {
	if maxAttempts <= 0 {
		maxAttempts = len(rails)
	}
	return &IssuanceServiceImpl{
		wallets:        wallets,
		selector:       selector,
		monitor:        monitor,
		rails:          rails,
		issuanceRepo:   issuanceRepo,
		reserves:       reserves,
		transactor:     transactor,
		cache:          cache,
		maxAttempts:    maxAttempts,
		mintTimeout:    mintTimeout,
		idempotencyTTL: idempotencyTTL,
		log:            log,
		now:            time.Now,
	}
}

// Issue provisions (or reuses) the invoice's wallet, then attempts the mint
// against providers in ranked order until one succeeds or candidates run out.
// Provider attempts are strictly sequential: fanning out could double-mint
// the same logical request.
func (s *IssuanceServiceImpl) Issue(ctx context.Context, req ports.IssuanceRequest) (*ports.IssuanceResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}

	idempKey := issuanceIdempotencyKey(req)

	// Fast path: a repeated submission returns the recorded outcome.
	if idempKey != "" {
		cached, err := s.cache.Get(ctx, idempKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("issuance idempotency check failed, proceeding")
		}
		if cached != nil {
			return unmarshalCachedResult(cached)
		}
	}

	health := s.monitor.Snapshot()

	// Wallet creation uses the single best provider; it is not retried across
	// rails. With no healthy provider at all, the call fails before any mint
	// attempt and without touching the ledger.
	creatorName, err := s.selector.SelectNext(nil, health)
	if err != nil {
		return nil, err
	}
	creator, ok := s.rails[creatorName]
	if !ok {
		return nil, apperror.ErrUnknownProvider(creatorName)
	}

	wallet, err := s.wallets.GetOrCreate(ctx, ports.WalletRequest{
		InvoiceID:  req.InvoiceID,
		Mode:       req.Mode,
		TTLSeconds: req.TTLSeconds,
		Currency:   req.Currency,
	}, creator)
	if err != nil {
		return nil, err
	}

	record := &domain.IssuanceRecord{
		WalletID:  wallet.ID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    domain.IssuanceStatusPending,
		CreatedAt: s.now().UTC(),
	}

	var excluded []string
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		name, err := s.selector.SelectNext(excluded, health)
		if err != nil {
			break // candidates exhausted
		}
		rail, ok := s.rails[name]
		if !ok {
			return nil, apperror.ErrUnknownProvider(name)
		}

		// Re-check the wallet before every mint; a TTL can elapse mid-call.
		wallet, err = s.wallets.Touch(ctx, wallet)
		if err != nil {
			return nil, err
		}
		if wallet.Status != domain.WalletStatusActive {
			return nil, apperror.ErrWalletInactive(string(wallet.Status))
		}

		mintCtx, cancel := context.WithTimeout(ctx, s.mintTimeout)
		txID, mintErr := rail.Mint(mintCtx, wallet.Address, req.Amount, req.Currency)
		cancel()

		if mintErr != nil {
			kind := classifyMintError(mintErr)
			record.Attempts = append(record.Attempts, domain.MintAttempt{
				ProviderName: name,
				Outcome:      domain.AttemptOutcomeFailed,
				ErrorKind:    kind,
				TimestampMs:  s.now().UnixMilli(),
			})
			metrics.ObserveMintAttempt(name, "failed")
			s.log.Warn().Err(mintErr).
				Str("provider", name).
				Str("invoice_id", req.InvoiceID).
				Str("error_kind", string(kind)).
				Msg("mint attempt failed, advancing to next provider")

			if ctx.Err() != nil {
				// Caller gave up; stop before anything reaches the ledger.
				return nil, apperror.InternalError(fmt.Errorf("issuance cancelled: %w", ctx.Err()))
			}

			excluded = append(excluded, name)
			continue
		}

		record.Attempts = append(record.Attempts, domain.MintAttempt{
			ProviderName: name,
			Outcome:      domain.AttemptOutcomeSucceeded,
			TimestampMs:  s.now().UnixMilli(),
		})
		record.TransactionID = txID
		record.ProviderName = name
		record.Status = domain.IssuanceStatusSucceeded
		metrics.ObserveMintAttempt(name, "succeeded")
		break
	}

	if record.Status != domain.IssuanceStatusSucceeded {
		if len(record.Attempts) > 0 {
			s.persistFailure(ctx, record)
		}
		return nil, apperror.ErrAllProvidersDown()
	}

	result := &ports.IssuanceResult{Record: record, Wallet: wallet}

	// Atomic unit: issuance record + reserve increment. The external mint has
	// already happened; a failure here is a reconciliation anomaly, alerted
	// and counted but never rolled back and never surfaced to the caller.
	reserve, err := s.commitMint(ctx, record)
	if err != nil {
		metrics.IncReconciliationAnomaly()
		s.log.Error().
			Err(apperror.ErrReconciliationAnomaly(err)).
			Str("transaction_id", record.TransactionID).
			Str("provider", record.ProviderName).
			Str("currency", record.Currency).
			Int64("amount", record.Amount).
			Msg("ledger update failed after confirmed mint")
	} else {
		result.Reserve = reserve
	}

	if idempKey != "" {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, idempKey, data, s.idempotencyTTL); err != nil {
				s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache issuance result")
			}
		}
	}

	s.log.Info().
		Str("transaction_id", record.TransactionID).
		Str("wallet_id", wallet.ID.String()).
		Str("provider", record.ProviderName).
		Int64("amount", record.Amount).
		Str("currency", record.Currency).
		Int("attempts", len(record.Attempts)).
		Msg("issuance succeeded")

	return result, nil
}

// commitMint persists the SUCCEEDED record and the reserve increment in one
// transaction, returning the updated reserve account.
func (s *IssuanceServiceImpl) commitMint(ctx context.Context, record *domain.IssuanceRecord) (*domain.ReserveAccount, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.issuanceRepo.Create(ctx, dbTx, record); err != nil {
		return nil, fmt.Errorf("create issuance record: %w", err)
	}

	// Invoice fiat backs the minted tokens 1:1.
	reserve, err := s.reserves.RecordMint(ctx, dbTx, record.Currency, record.Amount, record.Amount)
	if err != nil {
		return nil, fmt.Errorf("record mint in reserve: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return reserve, nil
}

// persistFailure records an exhausted issuance for audit. Best effort: the
// caller's AllProvidersDown outcome stands either way.
func (s *IssuanceServiceImpl) persistFailure(ctx context.Context, record *domain.IssuanceRecord) {
	record.Status = domain.IssuanceStatusFailed
	record.TransactionID = "iss_failed_" + uuid.NewString()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not persist failed issuance record")
		return
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.issuanceRepo.Create(ctx, dbTx, record); err != nil {
		s.log.Warn().Err(err).Msg("could not persist failed issuance record")
		return
	}
	if err := dbTx.Commit(ctx); err != nil {
		s.log.Warn().Err(err).Msg("could not persist failed issuance record")
	}
}

func issuanceIdempotencyKey(req ports.IssuanceRequest) string {
	if req.ReferenceID == "" {
		return ""
	}
	return req.InvoiceID + ":" + req.ReferenceID
}

func unmarshalCachedResult(data []byte) (*ports.IssuanceResult, error) {
	result := &ports.IssuanceResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached issuance: %w", err))
	}
	return result, nil
}

// errorKinder lets rail adapters carry their own failure classification.
type errorKinder interface {
	ErrorKind() domain.ErrorKind
}

// classifyMintError buckets a mint failure for the attempt trail.
func classifyMintError(err error) domain.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrorKindTimeout
	}
	var k errorKinder
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return domain.ErrorKindTransport
}
