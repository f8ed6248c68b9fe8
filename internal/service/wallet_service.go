package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletLifecycle.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	log        zerolog.Logger
	now        func() time.Time

	// creationLocks serializes GetOrCreate per invoice id so concurrent
	// issuance calls for the same invoice never race two wallets into
	// existence. The partial unique index on (owner_invoice_id) backs this
	// up at the storage layer.
	creationLocks sync.Map // invoiceID -> *sync.Mutex
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(walletRepo ports.WalletRepository, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		log:        log,
		now:        time.Now,
	}
}

func (s *WalletServiceImpl) lockFor(invoiceID string) *sync.Mutex {
	v, _ := s.creationLocks.LoadOrStore(invoiceID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// GetOrCreate returns the ACTIVE wallet bound to the invoice, creating one
// through the supplied provider if none exists. Wallet creation is the only
// lifecycle operation that calls out to a rail.
func (s *WalletServiceImpl) GetOrCreate(ctx context.Context, req ports.WalletRequest, provider ports.RailProvider) (*domain.Wallet, error) {
	mu := s.lockFor(req.InvoiceID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.walletRepo.GetActiveByInvoiceID(ctx, req.InvoiceID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup wallet for invoice: %w", err))
	}
	if existing != nil {
		touched, err := s.Touch(ctx, existing)
		if err != nil {
			return nil, err
		}
		if touched.Status == domain.WalletStatusActive {
			return touched, nil
		}
		// TTL elapsed between issuances; fall through and mint a fresh wallet.
	}

	address, err := provider.CreateWallet(ctx, req.InvoiceID)
	if err != nil {
		return nil, apperror.ErrWalletCreation(fmt.Errorf("provider %s: %w", provider.Name(), err))
	}

	now := s.now().UTC()
	wallet := &domain.Wallet{
		ID:             uuid.New(),
		Address:        address,
		OwnerInvoiceID: req.InvoiceID,
		Mode:           req.Mode,
		Currency:       req.Currency,
		Status:         domain.WalletStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.Mode == domain.WalletModeEphemeral {
		ttl := int64(domain.DefaultEphemeralTTL / time.Second)
		if req.TTLSeconds != nil {
			ttl = *req.TTLSeconds
		}
		expires := now.Add(time.Duration(ttl) * time.Second)
		wallet.TTLSeconds = &ttl
		wallet.ExpiresAt = &expires
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("persist wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("invoice_id", req.InvoiceID).
		Str("mode", string(req.Mode)).
		Str("provider", provider.Name()).
		Msg("invoice wallet created")

	return wallet, nil
}

// Touch lazily evaluates TTL expiry. An ephemeral ACTIVE wallet past its
// expires_at transitions to EXPIRED; everything else passes through
// unchanged. The repo update is guarded on status = ACTIVE, so a concurrent
// sweeper and Touch converge on the same terminal state.
func (s *WalletServiceImpl) Touch(ctx context.Context, w *domain.Wallet) (*domain.Wallet, error) {
	if w.Status != domain.WalletStatusActive || !w.IsExpiredAt(s.now().UTC()) {
		return w, nil
	}

	if _, err := s.walletRepo.TransitionStatus(ctx, w.ID, domain.WalletStatusActive, domain.WalletStatusExpired); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("expire wallet: %w", err))
	}

	expired := *w
	expired.Status = domain.WalletStatusExpired
	expired.UpdatedAt = s.now().UTC()

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("invoice_id", w.OwnerInvoiceID).
		Msg("ephemeral wallet expired")

	return &expired, nil
}

// Deactivate transitions ACTIVE -> INACTIVE. Terminal wallets fail with
// WAL_003; the states never transition back.
func (s *WalletServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.IsTerminal() {
		return nil, apperror.ErrInvalidState(string(w.Status), string(domain.WalletStatusInactive))
	}

	applied, err := s.walletRepo.TransitionStatus(ctx, id, domain.WalletStatusActive, domain.WalletStatusInactive)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("deactivate wallet: %w", err))
	}
	if !applied {
		// Lost a race against expiry or another deactivation.
		return nil, apperror.ErrInvalidState(string(domain.WalletStatusActive), string(domain.WalletStatusInactive))
	}

	deactivated := *w
	deactivated.Status = domain.WalletStatusInactive
	deactivated.UpdatedAt = s.now().UTC()

	s.log.Info().Str("wallet_id", id.String()).Msg("wallet deactivated")

	return &deactivated, nil
}

// Get fetches a wallet by id with lazy expiry applied.
func (s *WalletServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return s.Touch(ctx, w)
}
