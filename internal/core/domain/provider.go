package domain

import "time"

// ProviderSpec is the static registration of a rail provider: identity and
// routing priority. Health is tracked separately by the monitor.
type ProviderSpec struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"` // lower = preferred
}

// HealthStatus is one provider's live health entry. Written exclusively by
// the health monitor; everyone else reads snapshots.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Latency       time.Duration `json:"latency"`
	LastCheckedAt time.Time     `json:"last_checked_at"`
	LastHealthyAt time.Time     `json:"last_healthy_at"`
}
