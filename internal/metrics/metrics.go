package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the engine-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	providerHealthy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "invoice_wallet",
			Subsystem: "provider",
			Name:      "healthy",
			Help:      "Whether the rail provider passed its last probe (1 = healthy).",
		},
		[]string{"provider"},
	)

	providerProbeLatency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "invoice_wallet",
			Subsystem: "provider",
			Name:      "probe_latency_seconds",
			Help:      "Round-trip time of the last successful liveness probe.",
		},
		[]string{"provider"},
	)

	mintAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invoice_wallet",
			Subsystem: "issuance",
			Name:      "mint_attempts_total",
			Help:      "Mint attempts per provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	reconciliationAnomalies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "invoice_wallet",
			Subsystem: "reserve",
			Name:      "reconciliation_anomalies_total",
			Help:      "Confirmed external mints whose internal ledger write failed.",
		},
	)

	reserveRatio = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "invoice_wallet",
			Subsystem: "reserve",
			Name:      "ratio",
			Help:      "Fiat reserved divided by tokens minted, per currency.",
		},
		[]string{"currency"},
	)
)

func init() {
	Registry.MustRegister(
		providerHealthy,
		providerProbeLatency,
		mintAttempts,
		reconciliationAnomalies,
		reserveRatio,
	)
}

// SetProviderHealth records the outcome of a liveness probe.
func SetProviderHealth(provider string, healthy bool, latency time.Duration) {
	v := 0.0
	if healthy {
		v = 1.0
		providerProbeLatency.WithLabelValues(provider).Set(latency.Seconds())
	}
	providerHealthy.WithLabelValues(provider).Set(v)
}

// ObserveMintAttempt counts one provider mint attempt.
func ObserveMintAttempt(provider, outcome string) {
	mintAttempts.WithLabelValues(provider, outcome).Inc()
}

// IncReconciliationAnomaly counts a mint/ledger divergence.
func IncReconciliationAnomaly() {
	reconciliationAnomalies.Inc()
}

// SetReserveRatio exports the backing ratio for a currency.
func SetReserveRatio(currency string, ratio float64) {
	reserveRatio.WithLabelValues(currency).Set(ratio)
}

// Handler serves the registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
