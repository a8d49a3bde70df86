package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var (
	ErrNoEngineAvailable = errors.New("no search engine available")
	ErrEngineNotFound    = errors.New("search engine not found")
	ErrNoIndexes         = errors.New("search request has no indexes")
)

const (
	// healthTimeout bounds the health checks used to pick an engine.
	healthTimeout = 3 * time.Second
	// defaultHealthInterval is how long a selected engine is trusted
	// before selection runs again.
	defaultHealthInterval = 30 * time.Second
)

// Client routes search requests to one of several engine adapters.
// It is safe for concurrent use.
type Client struct {
	adapters      map[Engine]Adapter
	collector     Collector
	defaultEngine Engine
	size          int

	healthInterval time.Duration
	now            func() time.Time

	mu         sync.Mutex
	engine     Engine
	selectedAt time.Time
}

// NewClient creates a new search client with provided adapters
func NewClient(collector Collector, adapters ...Adapter) *Client {
	return NewClientWithEngine(collector, "", adapters...)
}

// NewClientWithEngine creates a search client preferring defaultEngine
// when its adapter is registered and healthy.
func NewClientWithEngine(collector Collector, defaultEngine Engine, adapters ...Adapter) *Client {
	adapterMap := make(map[Engine]Adapter, len(adapters))
	for _, a := range adapters {
		if a == nil {
			continue
		}
		adapterMap[a.Type()] = a
	}

	if collector == nil {
		collector = NoOpCollector{}
	}

	return &Client{
		adapters:       adapterMap,
		collector:      collector,
		defaultEngine:  defaultEngine,
		healthInterval: defaultHealthInterval,
		now:            time.Now,
	}
}

// SetHealthInterval sets how long a selected engine is kept before the
// health checks run again. Non-positive values keep the default.
func (c *Client) SetHealthInterval(d time.Duration) {
	if d <= 0 {
		d = defaultHealthInterval
	}
	c.mu.Lock()
	c.healthInterval = d
	c.mu.Unlock()
}

// SetSize sets the hit cap applied to requests that do not carry one.
func (c *Client) SetSize(size int) {
	c.size = size
}

// selectEngine picks the engine used by Search.
// Priority: configured default > OpenSearch > Elasticsearch > Meilisearch.
func (c *Client) selectEngine(ctx context.Context) Engine {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if c.defaultEngine != "" {
		if adapter, ok := c.adapters[c.defaultEngine]; ok && adapter.Health(ctx) == nil {
			return c.defaultEngine
		}
	}

	for _, eng := range []Engine{OpenSearch, Elasticsearch, Meilisearch} {
		if adapter, ok := c.adapters[eng]; ok && adapter.Health(ctx) == nil {
			return eng
		}
	}

	return ""
}

// getAdapter returns the selected engine, selecting again when none is
// cached or the cached choice is older than the health interval. A
// recovered default engine is therefore picked up on the next selection.
func (c *Client) getAdapter(ctx context.Context) (Engine, Adapter, error) {
	c.mu.Lock()
	now := c.now()
	if c.engine == "" || now.Sub(c.selectedAt) >= c.healthInterval {
		c.engine = c.selectEngine(ctx)
		c.selectedAt = now
	}
	engine := c.engine
	c.mu.Unlock()

	if engine == "" {
		return "", nil, ErrNoEngineAvailable
	}
	adapter, ok := c.adapters[engine]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}
	return engine, adapter, nil
}

// Search performs the request with the selected engine.
func (c *Client) Search(ctx context.Context, req *Request) (*Response, error) {
	engine, _, err := c.getAdapter(ctx)
	if err != nil {
		c.collector.SearchQuery("", err)
		return nil, err
	}
	resp, err := c.SearchWith(ctx, engine, req)
	if err != nil && ctx.Err() == nil && !errors.Is(err, ErrNoIndexes) {
		c.invalidate(engine)
	}
	return resp, err
}

// invalidate drops the cached selection when it still points at engine,
// so the next search selects again. The failed request is not retried.
func (c *Client) invalidate(engine Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == engine {
		c.engine = ""
	}
}

// SearchWith performs the request with the given engine.
func (c *Client) SearchWith(ctx context.Context, engine Engine, req *Request) (*Response, error) {
	adapter, ok := c.adapters[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}
	if req == nil || len(req.Indexes) == 0 {
		return nil, ErrNoIndexes
	}

	r := *req
	if r.Size == 0 {
		r.Size = c.size
	}

	start := time.Now()
	resp, err := adapter.Search(ctx, &r)
	if err == nil && resp == nil {
		err = errors.New("empty response")
	}
	c.collector.SearchQuery(string(engine), err)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", engine, err)
	}

	resp.Duration = time.Since(start)
	resp.Engine = engine
	return resp, nil
}

// Engine returns the selected engine, or "" before the first search and
// after a failed one.
func (c *Client) Engine() Engine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine
}

// Engines returns the registered engines in name order.
func (c *Client) Engines() []Engine {
	engines := make([]Engine, 0, len(c.adapters))
	for eng := range c.adapters {
		engines = append(engines, eng)
	}
	slices.Sort(engines)
	return engines
}

// Health checks every registered adapter.
func (c *Client) Health(ctx context.Context) map[Engine]error {
	results := make(map[Engine]error, len(c.adapters))
	for eng, adapter := range c.adapters {
		results[eng] = adapter.Health(ctx)
	}
	return results
}
