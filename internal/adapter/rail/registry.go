package rail

import (
	"invoice-wallet-engine/config"
	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports"
)

// BuildProviders constructs rail clients and their routing specs from config.
// Disabled entries are skipped entirely: they never appear in routing and are
// never probed.
func BuildProviders(cfgs []config.ProviderConfig) (map[string]ports.RailProvider, []domain.ProviderSpec) {
	rails := make(map[string]ports.RailProvider, len(cfgs))
	specs := make([]domain.ProviderSpec, 0, len(cfgs))

	for _, c := range cfgs {
		if c.Disabled {
			continue
		}
		rails[c.Name] = NewHTTPRail(c.Name, c.BaseURL, c.APIKey)
		specs = append(specs, domain.ProviderSpec{Name: c.Name, Priority: c.Priority})
	}
	return rails, specs
}
