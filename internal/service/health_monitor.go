package service

import (
	"context"
	"sync"
	"time"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/metrics"

	"github.com/rs/zerolog"
)

// HealthMonitorImpl implements ports.HealthMonitor. It is the sole writer of
// the provider health table; the selector and orchestrator only ever see
// snapshot copies. Probe failures degrade data (healthy=false), they never
// surface as errors to callers.
type HealthMonitorImpl struct {
	providers    []ports.RailProvider
	interval     time.Duration
	probeTimeout time.Duration
	staleAfter   time.Duration

	mu    sync.RWMutex
	table map[string]domain.HealthStatus

	log zerolog.Logger
	now func() time.Time
}

// NewHealthMonitor creates a monitor for the registered providers.
// staleCycles intervals without a successful probe force a provider unhealthy
// even if no probe has run since.
func NewHealthMonitor(providers []ports.RailProvider, interval, probeTimeout time.Duration, staleCycles int, log zerolog.Logger) *HealthMonitorImpl {
	if staleCycles < 1 {
		staleCycles = 1
	}
	return &HealthMonitorImpl{
		providers:    providers,
		interval:     interval,
		probeTimeout: probeTimeout,
		staleAfter:   time.Duration(staleCycles) * interval,
		table:        make(map[string]domain.HealthStatus, len(providers)),
		log:          log,
		now:          time.Now,
	}
}

// CheckAll probes every provider once, concurrently, and returns the updated
// table. Each probe gets its own bounded timeout.
func (m *HealthMonitorImpl) CheckAll(ctx context.Context) ports.HealthSnapshot {
	var wg sync.WaitGroup
	for _, p := range m.providers {
		wg.Add(1)
		go func(p ports.RailProvider) {
			defer wg.Done()
			m.probe(ctx, p)
		}(p)
	}
	wg.Wait()
	return m.Snapshot()
}

func (m *HealthMonitorImpl) probe(ctx context.Context, p ports.RailProvider) {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	checkedAt := m.now().UTC()
	latency, err := p.Probe(probeCtx)

	m.mu.Lock()
	status := m.table[p.Name()]
	status.LastCheckedAt = checkedAt
	if err != nil {
		status.Healthy = false
		m.log.Warn().Err(err).Str("provider", p.Name()).Msg("provider probe failed")
	} else {
		status.Healthy = true
		status.Latency = latency
		status.LastHealthyAt = checkedAt
	}
	m.table[p.Name()] = status
	m.mu.Unlock()

	metrics.SetProviderHealth(p.Name(), err == nil, latency)
}

// Snapshot returns a copy of the health table. Staleness is applied at read
// time: a provider with no successful probe within the stale window reads as
// unhealthy regardless of its last recorded state.
func (m *HealthMonitorImpl) Snapshot() ports.HealthSnapshot {
	now := m.now().UTC()

	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := make(ports.HealthSnapshot, len(m.table))
	for name, status := range m.table {
		if status.Healthy && now.Sub(status.LastHealthyAt) > m.staleAfter {
			status.Healthy = false
		}
		snap[name] = status
	}
	return snap
}

// IsHealthy reports the provider's current health. Unknown providers are
// unhealthy.
func (m *HealthMonitorImpl) IsHealthy(name string) bool {
	return m.Snapshot()[name].Healthy
}

// Latency returns the most recent successful probe's round-trip time.
func (m *HealthMonitorImpl) Latency(name string) time.Duration {
	return m.Snapshot()[name].Latency
}

// Start runs the probe loop until ctx is cancelled. An initial sweep runs
// immediately so routing has data before the first tick.
func (m *HealthMonitorImpl) Start(ctx context.Context) {
	m.CheckAll(ctx)

	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				m.log.Info().Msg("health monitor stopped")
				return
			case <-ticker.C:
				m.CheckAll(ctx)
			}
		}
	}()
}
