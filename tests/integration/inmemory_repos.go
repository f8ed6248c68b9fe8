package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"invoice-wallet-engine/internal/adapter/rail"
	"invoice-wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.Status == domain.WalletStatusActive {
		for _, existing := range r.wallets {
			if existing.OwnerInvoiceID == w.OwnerInvoiceID && existing.Status == domain.WalletStatusActive {
				return fmt.Errorf("active wallet already exists for invoice %s", w.OwnerInvoiceID)
			}
		}
	}
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetActiveByInvoiceID(ctx context.Context, invoiceID string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.OwnerInvoiceID == invoiceID && w.Status == domain.WalletStatusActive {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.WalletStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok || w.Status != from {
		return false, nil
	}
	w.Status = to
	w.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryWalletRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, w := range r.wallets {
		if w.Mode == domain.WalletModeEphemeral && w.Status == domain.WalletStatusActive &&
			w.ExpiresAt != nil && !w.ExpiresAt.After(now) {
			w.Status = domain.WalletStatusExpired
			w.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (r *inMemoryWalletRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wallets)
}

// --- In-Memory Issuance Repo ---

type inMemoryIssuanceRepo struct {
	mu      sync.RWMutex
	records []*domain.IssuanceRecord
}

func newInMemoryIssuanceRepo() *inMemoryIssuanceRepo {
	return &inMemoryIssuanceRepo{}
}

func (r *inMemoryIssuanceRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.IssuanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.TransactionID == rec.TransactionID {
			return fmt.Errorf("transaction id already exists")
		}
	}
	cp := *rec
	cp.Attempts = append([]domain.MintAttempt(nil), rec.Attempts...)
	r.records = append(r.records, &cp)
	return nil
}

func (r *inMemoryIssuanceRepo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.IssuanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.TransactionID == transactionID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryIssuanceRepo) ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]domain.IssuanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.IssuanceRecord
	// Newest first, matching the persistent query.
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].WalletID == walletID {
			out = append(out, *r.records[i])
		}
	}
	return out, nil
}

func (r *inMemoryIssuanceRepo) byStatus(status domain.IssuanceStatus) []domain.IssuanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.IssuanceRecord
	for _, rec := range r.records {
		if rec.Status == status {
			out = append(out, *rec)
		}
	}
	return out
}

// --- In-Memory Reserve Repo ---

type inMemoryReserveRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.ReserveAccount
}

func newInMemoryReserveRepo() *inMemoryReserveRepo {
	return &inMemoryReserveRepo{accounts: make(map[string]*domain.ReserveAccount)}
}

func (r *inMemoryReserveRepo) ApplyMint(ctx context.Context, tx pgx.Tx, currency string, fiatAmount, tokenAmount int64) (*domain.ReserveAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[currency]
	if !ok {
		acc = &domain.ReserveAccount{Currency: currency}
		r.accounts[currency] = acc
	}
	acc.TotalFiatReserved += fiatAmount
	acc.TotalTokensMinted += tokenAmount
	acc.UpdatedAt = time.Now().UTC()
	cp := *acc
	return &cp, nil
}

func (r *inMemoryReserveRepo) Get(ctx context.Context, currency string) (*domain.ReserveAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[currency]
	if !ok {
		return nil, nil
	}
	cp := *acc
	return &cp, nil
}

func (r *inMemoryReserveRepo) List(ctx context.Context) ([]domain.ReserveAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ReserveAccount, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, *acc)
	}
	return out, nil
}

// --- In-Memory Transactor ---

// inMemoryTx satisfies pgx.Tx for repos that ignore the transaction handle.
// Only Commit and Rollback are callable.
type inMemoryTx struct {
	pgx.Tx
}

func (t *inMemoryTx) Commit(ctx context.Context) error   { return nil }
func (t *inMemoryTx) Rollback(ctx context.Context) error { return nil }

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &inMemoryTx{}, nil
}

// --- Fake Rail Provider ---

// fakeRail is a scriptable in-process provider. Failure modes are toggled
// per test; counters let tests assert how often the rail was actually hit.
type fakeRail struct {
	name    string
	latency time.Duration

	mu       sync.Mutex
	probeErr error
	mintErr  error

	mintCalls   atomic.Int64
	walletCalls atomic.Int64
}

func newFakeRail(name string) *fakeRail {
	return &fakeRail{name: name, latency: time.Millisecond}
}

func (f *fakeRail) Name() string { return f.name }

func (f *fakeRail) Probe(ctx context.Context) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.probeErr != nil {
		return 0, f.probeErr
	}
	return f.latency, nil
}

func (f *fakeRail) CreateWallet(ctx context.Context, invoiceID string) (string, error) {
	n := f.walletCalls.Add(1)
	return fmt.Sprintf("addr_%s_%s_%d", f.name, invoiceID, n), nil
}

func (f *fakeRail) Mint(ctx context.Context, walletAddress string, amount int64, currency string) (string, error) {
	n := f.mintCalls.Add(1)
	f.mu.Lock()
	err := f.mintErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tx_%s_%d", f.name, n), nil
}

func (f *fakeRail) failProbes(err error) {
	f.mu.Lock()
	f.probeErr = err
	f.mu.Unlock()
}

func (f *fakeRail) failMints(kind domain.ErrorKind) {
	f.mu.Lock()
	f.mintErr = &rail.RailError{Provider: f.name, Kind: kind, Err: fmt.Errorf("scripted failure")}
	f.mu.Unlock()
}

func (f *fakeRail) recover() {
	f.mu.Lock()
	f.probeErr = nil
	f.mintErr = nil
	f.mu.Unlock()
}
