package handler

import (
	"invoice-wallet-engine/internal/adapter/http/dto"
	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReserveHandler exposes the reserve ledger.
type ReserveHandler struct {
	reserveSvc ports.ReserveLedger
}

// NewReserveHandler creates a new ReserveHandler.
func NewReserveHandler(reserveSvc ports.ReserveLedger) *ReserveHandler {
	return &ReserveHandler{reserveSvc: reserveSvc}
}

// List handles GET /api/v1/reserves/balance.
func (h *ReserveHandler) List(c *gin.Context) {
	accounts, err := h.reserveSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	entries := make([]dto.ReserveResponse, len(accounts))
	for i := range accounts {
		entries[i] = toReserveResponse(&accounts[i])
	}
	response.OK(c, entries)
}

// Get handles GET /api/v1/reserves/balance/:currency. Untracked currencies
// read as empty accounts, ratio 1.0.
func (h *ReserveHandler) Get(c *gin.Context) {
	acct, err := h.reserveSvc.Snapshot(c.Request.Context(), c.Param("currency"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toReserveResponse(acct))
}

func toReserveResponse(acct *domain.ReserveAccount) dto.ReserveResponse {
	return dto.ReserveResponse{
		Currency:          acct.Currency,
		TotalFiatReserved: acct.TotalFiatReserved,
		TotalTokensMinted: acct.TotalTokensMinted,
		Ratio:             acct.Ratio(),
		Status:            string(acct.Status()),
	}
}
