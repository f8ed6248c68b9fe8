package handler

import (
	"invoice-wallet-engine/internal/adapter/http/dto"
	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/pkg/apperror"
	"invoice-wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// IssuanceHandler handles issuance endpoints.
type IssuanceHandler struct {
	issuanceSvc  ports.IssuanceOrchestrator
	issuanceRepo ports.IssuanceRepository
}

// NewIssuanceHandler creates a new IssuanceHandler.
func NewIssuanceHandler(issuanceSvc ports.IssuanceOrchestrator, issuanceRepo ports.IssuanceRepository) *IssuanceHandler {
	return &IssuanceHandler{issuanceSvc: issuanceSvc, issuanceRepo: issuanceRepo}
}

// Issue handles POST /api/v1/invoice-wallets/:mode.
func (h *IssuanceHandler) Issue(c *gin.Context) {
	mode, ok := domain.ParseWalletMode(c.Param("mode"))
	if !ok {
		response.Error(c, apperror.ErrUnknownWalletMode(c.Param("mode")))
		return
	}

	var req dto.IssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.issuanceSvc.Issue(c.Request.Context(), ports.IssuanceRequest{
		InvoiceID:   req.InvoiceID,
		ReferenceID: req.ReferenceID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Mode:        mode,
		TTLSeconds:  req.TTLSeconds,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toIssuanceResponse(result))
}

// GetRecord handles GET /api/v1/issuances/:transaction_id.
func (h *IssuanceHandler) GetRecord(c *gin.Context) {
	rec, err := h.issuanceRepo.GetByTransactionID(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if rec == nil {
		response.Error(c, apperror.ErrIssuanceNotFound())
		return
	}
	response.OK(c, toIssuanceRecordResponse(rec))
}

func toIssuanceResponse(result *ports.IssuanceResult) dto.IssuanceResponse {
	resp := dto.IssuanceResponse{
		WalletAddress: result.Wallet.Address,
		TransactionID: result.Record.TransactionID,
		Provider:      result.Record.ProviderName,
		Record:        toIssuanceRecordResponse(result.Record),
		Wallet:        toWalletResponse(result.Wallet),
	}
	if result.Reserve != nil {
		r := toReserveResponse(result.Reserve)
		resp.Reserve = &r
		ratio := result.Reserve.Ratio()
		resp.ReserveRatio = &ratio
	}
	return resp
}

func toIssuanceRecordResponse(rec *domain.IssuanceRecord) dto.IssuanceRecordResponse {
	attempts := make([]dto.MintAttemptResponse, len(rec.Attempts))
	for i, a := range rec.Attempts {
		attempts[i] = dto.MintAttemptResponse{
			Provider:    a.ProviderName,
			Outcome:     string(a.Outcome),
			ErrorKind:   string(a.ErrorKind),
			TimestampMs: a.TimestampMs,
		}
	}
	return dto.IssuanceRecordResponse{
		TransactionID: rec.TransactionID,
		WalletID:      rec.WalletID.String(),
		Provider:      rec.ProviderName,
		Amount:        rec.Amount,
		Currency:      rec.Currency,
		Status:        string(rec.Status),
		Attempts:      attempts,
		CreatedAt:     rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
