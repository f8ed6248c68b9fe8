package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/core/ports/mocks"
	"invoice-wallet-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type issuanceTestDeps struct {
	svc          *IssuanceServiceImpl
	wallets      *mocks.MockWalletLifecycle
	selector     *mocks.MockProviderSelector
	monitor      *mocks.MockHealthMonitor
	tempo        *mocks.MockRailProvider
	circle       *mocks.MockRailProvider
	issuanceRepo *mocks.MockIssuanceRepository
	reserves     *mocks.MockReserveLedger
	transactor   *mocks.MockDBTransactor
	cache        *mocks.MockIssuanceCache
	ctrl         *gomock.Controller
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func setupIssuanceService(t *testing.T) *issuanceTestDeps {
	ctrl := gomock.NewController(t)
	d := &issuanceTestDeps{
		wallets:      mocks.NewMockWalletLifecycle(ctrl),
		selector:     mocks.NewMockProviderSelector(ctrl),
		monitor:      mocks.NewMockHealthMonitor(ctrl),
		tempo:        mocks.NewMockRailProvider(ctrl),
		circle:       mocks.NewMockRailProvider(ctrl),
		issuanceRepo: mocks.NewMockIssuanceRepository(ctrl),
		reserves:     mocks.NewMockReserveLedger(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		cache:        mocks.NewMockIssuanceCache(ctrl),
		ctrl:         ctrl,
	}
	rails := map[string]ports.RailProvider{"tempo": d.tempo, "circle": d.circle}
	d.svc = NewIssuanceService(
		d.wallets, d.selector, d.monitor, rails,
		d.issuanceRepo, d.reserves, d.transactor, d.cache,
		0, 5*time.Second, 24*time.Hour, zerolog.Nop(),
	)
	return d
}

func issuanceTestWallet() *domain.Wallet {
	return &domain.Wallet{
		ID:             uuid.New(),
		Address:        "0xwallet",
		OwnerInvoiceID: "INV-1",
		Mode:           domain.WalletModePersistent,
		Currency:       "USD",
		Status:         domain.WalletStatusActive,
	}
}

func TestIssuanceService_Issue_FirstProviderSucceeds(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	health := ports.HealthSnapshot{"tempo": {Healthy: true}}
	tx := &mockTx{}

	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("tempo", nil).Times(2)
	d.wallets.EXPECT().GetOrCreate(ctx, gomock.Any(), d.tempo).Return(wallet, nil)
	d.wallets.EXPECT().Touch(ctx, wallet).Return(wallet, nil)
	d.tempo.EXPECT().Mint(gomock.Any(), "0xwallet", int64(50000), "USD").Return("tx_abc", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.issuanceRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.reserves.EXPECT().RecordMint(ctx, tx, "USD", int64(50000), int64(50000)).
		Return(&domain.ReserveAccount{Currency: "USD", TotalFiatReserved: 50000, TotalTokensMinted: 50000}, nil)

	result, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    50000,
		Currency:  "USD",
		Mode:      domain.WalletModePersistent,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "tx_abc", result.Record.TransactionID)
	assert.Equal(t, "tempo", result.Record.ProviderName)
	assert.Equal(t, domain.IssuanceStatusSucceeded, result.Record.Status)
	require.Len(t, result.Record.Attempts, 1)
	assert.Equal(t, domain.AttemptOutcomeSucceeded, result.Record.Attempts[0].Outcome)
	require.NotNil(t, result.Reserve)
	assert.Equal(t, int64(50000), result.Reserve.TotalTokensMinted)
}

func TestIssuanceService_Issue_FailoverToSecondProvider(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	health := ports.HealthSnapshot{"tempo": {Healthy: true}, "circle": {Healthy: true}}
	tx := &mockTx{}

	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("tempo", nil).Times(2)
	d.selector.EXPECT().SelectNext([]string{"tempo"}, health).Return("circle", nil)
	d.wallets.EXPECT().GetOrCreate(ctx, gomock.Any(), d.tempo).Return(wallet, nil)
	d.wallets.EXPECT().Touch(ctx, wallet).Return(wallet, nil).Times(2)
	d.tempo.EXPECT().Mint(gomock.Any(), "0xwallet", int64(1000), "USD").
		Return("", errors.New("connection reset"))
	d.circle.EXPECT().Mint(gomock.Any(), "0xwallet", int64(1000), "USD").Return("tx_c1", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.issuanceRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.reserves.EXPECT().RecordMint(ctx, tx, "USD", int64(1000), int64(1000)).
		Return(&domain.ReserveAccount{Currency: "USD", TotalFiatReserved: 1000, TotalTokensMinted: 1000}, nil)

	result, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    1000,
		Currency:  "USD",
		Mode:      domain.WalletModePersistent,
	})
	require.NoError(t, err)

	assert.Equal(t, "circle", result.Record.ProviderName)
	require.Len(t, result.Record.Attempts, 2)
	assert.Equal(t, "tempo", result.Record.Attempts[0].ProviderName)
	assert.Equal(t, domain.AttemptOutcomeFailed, result.Record.Attempts[0].Outcome)
	assert.Equal(t, domain.ErrorKindTransport, result.Record.Attempts[0].ErrorKind)
	assert.Equal(t, "circle", result.Record.Attempts[1].ProviderName)
	assert.Equal(t, domain.AttemptOutcomeSucceeded, result.Record.Attempts[1].Outcome)
}

func TestIssuanceService_Issue_AllProvidersDownBeforeWalletCreation(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	health := ports.HealthSnapshot{}

	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("", apperror.ErrAllProvidersDown())
	// No wallet creation, no mint, no persistence of any kind.

	_, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    1000,
		Currency:  "USD",
		Mode:      domain.WalletModePersistent,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "PRV_002", appErr.Code)
}

func TestIssuanceService_Issue_ExhaustedAfterAttemptsPersistsFailure(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	health := ports.HealthSnapshot{"tempo": {Healthy: true}}
	tx := &mockTx{}

	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("tempo", nil).Times(2)
	d.selector.EXPECT().SelectNext([]string{"tempo"}, health).Return("", apperror.ErrAllProvidersDown())
	d.wallets.EXPECT().GetOrCreate(ctx, gomock.Any(), d.tempo).Return(wallet, nil)
	d.wallets.EXPECT().Touch(ctx, wallet).Return(wallet, nil)
	d.tempo.EXPECT().Mint(gomock.Any(), "0xwallet", int64(1000), "USD").
		Return("", errors.New("rejected by provider"))

	// The exhausted issuance is recorded FAILED for audit.
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.issuanceRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, rec *domain.IssuanceRecord) error {
			assert.Equal(t, domain.IssuanceStatusFailed, rec.Status)
			assert.Len(t, rec.Attempts, 1)
			assert.NotEmpty(t, rec.TransactionID)
			return nil
		})

	_, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    1000,
		Currency:  "USD",
		Mode:      domain.WalletModePersistent,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "PRV_002", appErr.Code)
}

func TestIssuanceService_Issue_LedgerFailureIsAnomalyNotError(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	health := ports.HealthSnapshot{"tempo": {Healthy: true}}

	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("tempo", nil).Times(2)
	d.wallets.EXPECT().GetOrCreate(ctx, gomock.Any(), d.tempo).Return(wallet, nil)
	d.wallets.EXPECT().Touch(ctx, wallet).Return(wallet, nil)
	d.tempo.EXPECT().Mint(gomock.Any(), "0xwallet", int64(1000), "USD").Return("tx_x", nil)
	// The external mint succeeded; the internal commit does not.
	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

	result, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    1000,
		Currency:  "USD",
		Mode:      domain.WalletModePersistent,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "tx_x", result.Record.TransactionID)
	assert.Equal(t, domain.IssuanceStatusSucceeded, result.Record.Status)
	assert.Nil(t, result.Reserve)
}

func TestIssuanceService_Issue_IdempotentReplay(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	cached := &ports.IssuanceResult{
		Record: &domain.IssuanceRecord{
			TransactionID: "tx_prev",
			WalletID:      wallet.ID,
			ProviderName:  "tempo",
			Amount:        1000,
			Currency:      "USD",
			Status:        domain.IssuanceStatusSucceeded,
		},
		Wallet: wallet,
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	d.cache.EXPECT().Get(ctx, "INV-1:REF-1").Return(data, nil)
	// No snapshot, no selection, no mint: the recorded outcome is replayed.

	result, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID:   "INV-1",
		ReferenceID: "REF-1",
		Amount:      1000,
		Currency:    "USD",
		Mode:        domain.WalletModePersistent,
	})
	require.NoError(t, err)
	assert.Equal(t, "tx_prev", result.Record.TransactionID)
}

func TestIssuanceService_Issue_CachesResultWithReference(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	health := ports.HealthSnapshot{"tempo": {Healthy: true}}
	tx := &mockTx{}

	d.cache.EXPECT().Get(ctx, "INV-1:REF-9").Return(nil, nil)
	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("tempo", nil).Times(2)
	d.wallets.EXPECT().GetOrCreate(ctx, gomock.Any(), d.tempo).Return(wallet, nil)
	d.wallets.EXPECT().Touch(ctx, wallet).Return(wallet, nil)
	d.tempo.EXPECT().Mint(gomock.Any(), "0xwallet", int64(1000), "USD").Return("tx_n", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.issuanceRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.reserves.EXPECT().RecordMint(ctx, tx, "USD", int64(1000), int64(1000)).
		Return(&domain.ReserveAccount{Currency: "USD"}, nil)
	d.cache.EXPECT().Set(ctx, "INV-1:REF-9", gomock.Any(), 24*time.Hour).Return(nil)

	_, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID:   "INV-1",
		ReferenceID: "REF-9",
		Amount:      1000,
		Currency:    "USD",
		Mode:        domain.WalletModePersistent,
	})
	require.NoError(t, err)
}

func TestIssuanceService_Issue_InvalidAmount(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Issue(context.Background(), ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    0,
		Currency:  "USD",
		Mode:      domain.WalletModePersistent,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestIssuanceService_Issue_InactiveWalletAborts(t *testing.T) {
	d := setupIssuanceService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := issuanceTestWallet()
	expired := *wallet
	expired.Status = domain.WalletStatusExpired
	health := ports.HealthSnapshot{"tempo": {Healthy: true}}

	d.monitor.EXPECT().Snapshot().Return(health)
	d.selector.EXPECT().SelectNext(gomock.Nil(), health).Return("tempo", nil).Times(2)
	d.wallets.EXPECT().GetOrCreate(ctx, gomock.Any(), d.tempo).Return(wallet, nil)
	// TTL elapsed between provisioning and mint.
	d.wallets.EXPECT().Touch(ctx, wallet).Return(&expired, nil)

	_, err := d.svc.Issue(ctx, ports.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    1000,
		Currency:  "USD",
		Mode:      domain.WalletModeEphemeral,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WAL_002", appErr.Code)
}

func TestClassifyMintError(t *testing.T) {
	assert.Equal(t, domain.ErrorKindTimeout, classifyMintError(context.DeadlineExceeded))
	assert.Equal(t, domain.ErrorKindTransport, classifyMintError(errors.New("boom")))
}
