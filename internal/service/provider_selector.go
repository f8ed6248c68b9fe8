package service

import (
	"sort"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/pkg/apperror"
)

// ProviderSelectorImpl implements ports.ProviderSelector over the static
// provider table loaded at startup. It holds no mutable state: ranking is a
// pure function of the health snapshot passed in, which keeps it trivially
// testable with fixture tables.
type ProviderSelectorImpl struct {
	specs []domain.ProviderSpec
}

// NewProviderSelector creates a selector for the configured providers.
func NewProviderSelector(specs []domain.ProviderSpec) *ProviderSelectorImpl {
	owned := make([]domain.ProviderSpec, len(specs))
	copy(owned, specs)
	return &ProviderSelectorImpl{specs: owned}
}

// Rank returns provider names by ascending priority, unhealthy providers
// removed. Equal priorities are broken by ascending probe latency, then name
// for determinism.
func (s *ProviderSelectorImpl) Rank(health ports.HealthSnapshot) []string {
	type candidate struct {
		spec   domain.ProviderSpec
		status domain.HealthStatus
	}

	candidates := make([]candidate, 0, len(s.specs))
	for _, spec := range s.specs {
		status, ok := health[spec.Name]
		if !ok || !status.Healthy {
			continue
		}
		candidates = append(candidates, candidate{spec: spec, status: status})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.spec.Priority != b.spec.Priority {
			return a.spec.Priority < b.spec.Priority
		}
		if a.status.Latency != b.status.Latency {
			return a.status.Latency < b.status.Latency
		}
		return a.spec.Name < b.spec.Name
	})

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.spec.Name
	}
	return names
}

// SelectNext returns the best-ranked provider outside the exclusion set.
// Returns PRV_002 when every candidate is unhealthy or already excluded.
func (s *ProviderSelectorImpl) SelectNext(excluded []string, health ports.HealthSnapshot) (string, error) {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	for _, name := range s.Rank(health) {
		if !skip[name] {
			return name, nil
		}
	}
	return "", apperror.ErrAllProvidersDown()
}
