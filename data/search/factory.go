package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/talentsearch/data/config"
)

// AdapterFactory creates a search adapter from the search configuration.
// It returns (nil, nil) when its engine is not configured.
type AdapterFactory func(cfg *config.Search) (Adapter, error)

var (
	// Registry of adapter factories by engine type
	adapterFactories = make(map[Engine]AdapterFactory)
	factoryMu        sync.RWMutex
)

// RegisterAdapterFactory registers a factory for creating search adapters
// This is called by search engine packages in their init() functions
func RegisterAdapterFactory(engine Engine, factory AdapterFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	adapterFactories[engine] = factory
}

// GetAdapterFactory returns the factory for a given engine
func GetAdapterFactory(engine Engine) (AdapterFactory, error) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := adapterFactories[engine]
	if !ok {
		return nil, fmt.Errorf("no adapter factory registered for engine: %s", engine)
	}
	return factory, nil
}

// GetRegisteredEngines returns list of engines with registered factories
func GetRegisteredEngines() []Engine {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	engines := make([]Engine, 0, len(adapterFactories))
	for engine := range adapterFactories {
		engines = append(engines, engine)
	}
	sort.Slice(engines, func(i, j int) bool { return engines[i] < engines[j] })
	return engines
}

// NewClientFromConfig builds adapters for every configured engine whose
// package has been imported, wraps them in circuit breakers when enabled,
// and returns a client preferring cfg.DefaultEngine.
func NewClientFromConfig(cfg *config.Search, collector Collector) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("search config is nil")
	}

	var adapters []Adapter
	for _, engine := range GetRegisteredEngines() {
		factory, err := GetAdapterFactory(engine)
		if err != nil {
			return nil, err
		}
		adapter, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", engine, err)
		}
		if adapter == nil {
			continue
		}
		if cfg.Breaker != nil && cfg.Breaker.Enabled {
			adapter = WithBreaker(adapter, cfg.Breaker)
		}
		adapters = append(adapters, adapter)
	}

	if len(adapters) == 0 {
		return nil, ErrNoEngineAvailable
	}

	c := NewClientWithEngine(collector, Engine(cfg.DefaultEngine), adapters...)
	c.SetSize(cfg.Size)
	c.SetHealthInterval(cfg.HealthInterval)
	return c, nil
}
