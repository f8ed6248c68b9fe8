package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invoice-wallet-engine/internal/adapter/http/dto"
	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/core/ports/mocks"
	"invoice-wallet-engine/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Issuance Handler Tests ---

func TestIssue_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockIssuanceOrchestrator(ctrl)
	h := NewIssuanceHandler(mockSvc, mocks.NewMockIssuanceRepository(ctrl))

	walletID := uuid.New()
	mockSvc.EXPECT().Issue(gomock.Any(), ports.IssuanceRequest{
		InvoiceID:   "INV-1",
		ReferenceID: "REF-1",
		Amount:      50000,
		Currency:    "USD",
		Mode:        domain.WalletModeEphemeral,
	}).Return(&ports.IssuanceResult{
		Record: &domain.IssuanceRecord{
			TransactionID: "tx_1",
			WalletID:      walletID,
			ProviderName:  "tempo",
			Amount:        50000,
			Currency:      "USD",
			Status:        domain.IssuanceStatusSucceeded,
			CreatedAt:     time.Now().UTC(),
		},
		Wallet: &domain.Wallet{
			ID:             walletID,
			Address:        "0xabc",
			OwnerInvoiceID: "INV-1",
			Mode:           domain.WalletModeEphemeral,
			Currency:       "USD",
			Status:         domain.WalletStatusActive,
		},
		Reserve: &domain.ReserveAccount{Currency: "USD", TotalFiatReserved: 50000, TotalTokensMinted: 50000},
	}, nil)

	body, _ := json.Marshal(dto.IssuanceRequest{
		InvoiceID:   "INV-1",
		ReferenceID: "REF-1",
		Amount:      50000,
		Currency:    "USD",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/invoice-wallets/ephemeral", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "mode", Value: "ephemeral"}}

	h.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "tx_1", data["transaction_id"])
	assert.Equal(t, "0xabc", data["wallet_address"])
	assert.Equal(t, "tempo", data["provider"])
	assert.Equal(t, 1.0, data["reserve_ratio"])
	record := data["record"].(map[string]interface{})
	assert.Equal(t, "tx_1", record["transaction_id"])
	reserve := data["reserve"].(map[string]interface{})
	assert.Equal(t, 1.0, reserve["ratio"])
}

func TestIssue_UnknownMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewIssuanceHandler(mocks.NewMockIssuanceOrchestrator(ctrl), mocks.NewMockIssuanceRepository(ctrl))

	body, _ := json.Marshal(dto.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    100,
		Currency:  "USD",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/invoice-wallets/forever", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "mode", Value: "forever"}}

	h.Issue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAL_005", resp["error_code"])
}

func TestIssue_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewIssuanceHandler(mocks.NewMockIssuanceOrchestrator(ctrl), mocks.NewMockIssuanceRepository(ctrl))

	// Missing amount => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/invoice-wallets/persistent", bytes.NewReader([]byte(`{"invoice_id":"INV-1"}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "mode", Value: "persistent"}}

	h.Issue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssue_AllProvidersDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockIssuanceOrchestrator(ctrl)
	h := NewIssuanceHandler(mockSvc, mocks.NewMockIssuanceRepository(ctrl))

	mockSvc.EXPECT().Issue(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrAllProvidersDown())

	body, _ := json.Marshal(dto.IssuanceRequest{
		InvoiceID: "INV-1",
		Amount:    100,
		Currency:  "USD",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/invoice-wallets/persistent", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "mode", Value: "persistent"}}

	h.Issue(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PRV_002", resp["error_code"])
}

func TestGetRecord_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIssuanceRepository(ctrl)
	h := NewIssuanceHandler(mocks.NewMockIssuanceOrchestrator(ctrl), mockRepo)

	mockRepo.EXPECT().GetByTransactionID(gomock.Any(), "tx_missing").Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/issuances/tx_missing", nil)
	c.Params = gin.Params{{Key: "transaction_id", Value: "tx_missing"}}

	h.GetRecord(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Wallet Handler Tests ---

func TestWalletGet_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockWalletLifecycle(ctrl), mocks.NewMockIssuanceRepository(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/invoice-wallets/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletLifecycle(ctrl)
	mockRepo := mocks.NewMockIssuanceRepository(ctrl)
	h := NewWalletHandler(mockWallets, mockRepo)

	id := uuid.New()
	mockWallets.EXPECT().Get(gomock.Any(), id).Return(&domain.Wallet{
		ID:             id,
		Address:        "0xabc",
		OwnerInvoiceID: "INV-1",
		Mode:           domain.WalletModePersistent,
		Currency:       "USD",
		Status:         domain.WalletStatusActive,
	}, nil)
	mockRepo.EXPECT().ListByWalletID(gomock.Any(), id).Return([]domain.IssuanceRecord{
		{TransactionID: "tx_1", WalletID: id, Status: domain.IssuanceStatusSucceeded},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/invoice-wallets/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	wallet := data["wallet"].(map[string]interface{})
	assert.Equal(t, id.String(), wallet["id"])
	assert.Len(t, data["issuances"], 1)
}

func TestWalletDeactivate_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallets := mocks.NewMockWalletLifecycle(ctrl)
	h := NewWalletHandler(mockWallets, mocks.NewMockIssuanceRepository(ctrl))

	id := uuid.New()
	mockWallets.EXPECT().Deactivate(gomock.Any(), id).
		Return(nil, apperror.ErrInvalidState("EXPIRED", "INACTIVE"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/invoice-wallets/"+id.String()+"/deactivate", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Deactivate(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- Provider Handler Tests ---

func TestProviderListHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMonitor := mocks.NewMockHealthMonitor(ctrl)
	h := NewProviderHandler(mockMonitor)

	mockMonitor.EXPECT().Snapshot().Return(ports.HealthSnapshot{
		"tempo":  {Healthy: true, Latency: 12 * time.Millisecond, LastCheckedAt: time.Now()},
		"circle": {Healthy: false, LastCheckedAt: time.Now()},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/providers/health", nil)

	h.ListHealth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)
	// Sorted by provider name
	first := data[0].(map[string]interface{})
	assert.Equal(t, "circle", first["provider"])
	assert.Equal(t, false, first["healthy"])
}

// --- Reserve Handler Tests ---

func TestReserveGet_UntrackedCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReserves := mocks.NewMockReserveLedger(ctrl)
	h := NewReserveHandler(mockReserves)

	mockReserves.EXPECT().Snapshot(gomock.Any(), "JPY").
		Return(&domain.ReserveAccount{Currency: "JPY"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/reserves/balance/JPY", nil)
	c.Params = gin.Params{{Key: "currency", Value: "JPY"}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "JPY", data["currency"])
	assert.Equal(t, 1.0, data["ratio"])
	assert.Equal(t, "HEALTHY", data["status"])
}
