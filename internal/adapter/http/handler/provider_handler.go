package handler

import (
	"sort"

	"invoice-wallet-engine/internal/adapter/http/dto"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes the provider health table.
type ProviderHandler struct {
	monitor ports.HealthMonitor
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(monitor ports.HealthMonitor) *ProviderHandler {
	return &ProviderHandler{monitor: monitor}
}

// ListHealth handles GET /api/v1/providers/health.
func (h *ProviderHandler) ListHealth(c *gin.Context) {
	snap := h.monitor.Snapshot()

	entries := make([]dto.ProviderHealthResponse, 0, len(snap))
	for name, status := range snap {
		entry := dto.ProviderHealthResponse{
			Provider:  name,
			Healthy:   status.Healthy,
			LatencyMs: status.Latency.Milliseconds(),
		}
		if !status.LastCheckedAt.IsZero() {
			entry.LastCheckedAt = status.LastCheckedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		if !status.LastHealthyAt.IsZero() {
			entry.LastHealthyAt = status.LastHealthyAt.Format("2006-01-02T15:04:05Z07:00")
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Provider < entries[j].Provider })

	response.OK(c, entries)
}

// Probe handles POST /api/v1/providers/health/probe. It forces an immediate
// probe sweep instead of waiting for the next monitor tick.
func (h *ProviderHandler) Probe(c *gin.Context) {
	h.monitor.CheckAll(c.Request.Context())
	h.ListHealth(c)
}
