package cas

import (
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
)

// Provider opens the caches of a project. Caches are bound to a root and a
// configuration, which are only known once a command runs.
type Provider struct {
	logger ports.Logger
}

// NewProvider creates a Provider that reports store diagnostics to logger.
func NewProvider(logger ports.Logger) *Provider {
	return &Provider{logger: logger}
}

// AnalysisCache returns the persisted cache for root, or an empty one when caching
// is disabled or the persisted file is unusable.
func (p *Provider) AnalysisCache(root, configHash string, settings domain.CacheSettings) *AnalysisCache {
	if !settings.Enabled {
		return NewAnalysisCache(configHash)
	}
	return LoadOrNew(root, configHash)
}

// HashCache opens the hybrid hash cache selected by settings. The JSON backend
// shares analysis as its persistent layer. The returned cache must be closed.
func (p *Provider) HashCache(root string, settings domain.CacheSettings, analysis *AnalysisCache) (*HybridCache, error) {
	capacity := settings.MemoryCapacity
	if capacity <= 0 {
		capacity = domain.DefaultMemoryCapacity
	}

	if settings.Backend != domain.CacheBackendBadger {
		return NewHybridCache(capacity, analysis), nil
	}

	store, err := OpenBadgerStore(root, p.logger)
	if err != nil {
		return nil, err
	}
	return NewHybridCache(capacity, store), nil
}
