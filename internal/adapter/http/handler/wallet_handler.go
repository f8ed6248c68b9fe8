package handler

import (
	"invoice-wallet-engine/internal/adapter/http/dto"
	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/pkg/apperror"
	"invoice-wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet lifecycle endpoints.
type WalletHandler struct {
	walletSvc    ports.WalletLifecycle
	issuanceRepo ports.IssuanceRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletLifecycle, issuanceRepo ports.IssuanceRepository) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, issuanceRepo: issuanceRepo}
}

// Get handles GET /api/v1/invoice-wallets/:id. Reading a wallet applies lazy
// TTL expiry, so the returned status is always current.
func (h *WalletHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	w, err := h.walletSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.issuanceRepo.ListByWalletID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	issuances := make([]dto.IssuanceRecordResponse, len(records))
	for i := range records {
		issuances[i] = toIssuanceRecordResponse(&records[i])
	}

	response.OK(c, dto.WalletDetailResponse{
		Wallet:    toWalletResponse(w),
		Issuances: issuances,
	})
}

// Deactivate handles PATCH /api/v1/invoice-wallets/:id/deactivate.
func (h *WalletHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	w, err := h.walletSvc.Deactivate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toWalletResponse(w))
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	resp := dto.WalletResponse{
		ID:             w.ID.String(),
		Address:        w.Address,
		OwnerInvoiceID: w.OwnerInvoiceID,
		Mode:           string(w.Mode),
		Currency:       w.Currency,
		TTLSeconds:     w.TTLSeconds,
		Status:         string(w.Status),
		CreatedAt:      w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if w.ExpiresAt != nil {
		s := w.ExpiresAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ExpiresAt = &s
	}
	return resp
}
