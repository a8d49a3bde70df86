package metrics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ncobase/talentsearch/logging/logger"
)

const (
	defaultFlushInterval = 10 * time.Second
	// storeTimeout bounds a single write to storage.
	storeTimeout = 2 * time.Second
)

// DataCollector collects backend query counters and talent search outcomes.
// It satisfies search.Collector and the talent search observer.
type DataCollector struct {
	// Backend metrics
	searchQueries atomic.Int64
	searchErrors  atomic.Int64

	// Talent search metrics
	talentSearches atomic.Int64
	talentFailures atomic.Int64
	talentHits     atomic.Int64

	// Health metrics
	healthChecks map[string]*atomic.Bool
	healthMu     sync.RWMutex

	lastSearchQuery atomic.Value // time.Time

	// Storage
	storage        Storage
	batchSize      int
	buffer         []Metric
	bufferMu       sync.Mutex
	flushMu        sync.Mutex
	storeErrors    atomic.Int64
	droppedMetrics atomic.Int64

	logger        *logger.Logger
	flushInterval time.Duration
	flushCh       chan struct{}
	stop          chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

// Option configures a DataCollector.
type Option func(*DataCollector)

// WithLogger logs storage failures to l.
func WithLogger(l *logger.Logger) Option {
	return func(c *DataCollector) {
		c.logger = l
	}
}

// WithFlushInterval sets how often buffered metrics are written even when
// the batch is not full.
func WithFlushInterval(d time.Duration) Option {
	return func(c *DataCollector) {
		if d > 0 {
			c.flushInterval = d
		}
	}
}

// Metric represents a single recorded event
type Metric struct {
	Type      string    `json:"type"`
	Value     int64     `json:"value"`
	Labels    Labels    `json:"labels"`
	Timestamp time.Time `json:"timestamp"`
}

// Labels for metric categorization
type Labels map[string]string

// Storage interface for metrics persistence
type Storage interface {
	Store(ctx context.Context, metrics []Metric) error
	Query(query QueryRequest) ([]Metric, error)
	Close() error
}

// QueryRequest for querying metrics
type QueryRequest struct {
	Type      string    `json:"type"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Labels    Labels    `json:"labels"`
	Limit     int       `json:"limit"`
}

// Metric types
const (
	TypeSearchQuery  = "search_query"
	TypeTalentSearch = "talent_search"
	TypeHealthCheck  = "health_check"
)

// NewDataCollector creates a new data collector with memory storage
func NewDataCollector(batchSize int, opts ...Option) *DataCollector {
	return NewDataCollectorWithStorage(NewMemoryStorage(), batchSize, opts...)
}

// NewDataCollectorWithStorage creates a new data collector on storage.
// Full batches and the flush interval are written by a background
// goroutine; Close stops it.
func NewDataCollectorWithStorage(storage Storage, batchSize int, opts ...Option) *DataCollector {
	if batchSize <= 0 {
		batchSize = 100
	}

	c := &DataCollector{
		healthChecks:  make(map[string]*atomic.Bool),
		storage:       storage,
		batchSize:     batchSize,
		buffer:        make([]Metric, 0, batchSize),
		flushInterval: defaultFlushInterval,
		flushCh:       make(chan struct{}, 1),
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastSearchQuery.Store(time.Time{})

	c.wg.Add(1)
	go c.run()

	return c
}

// run flushes when a batch fills up and on every tick.
func (c *DataCollector) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-c.flushCh:
		case <-ticker.C:
		}
		// Failures are counted and logged by Flush.
		_ = c.Flush()
	}
}

// SearchQuery records search query metrics
func (c *DataCollector) SearchQuery(engine string, err error) {
	c.searchQueries.Add(1)
	c.lastSearchQuery.Store(time.Now())

	if err != nil {
		c.searchErrors.Add(1)
	}

	c.recordMetric(TypeSearchQuery, 1, Labels{
		"engine":  engine,
		"success": boolToString(err == nil),
	})
}

// SearchFailed records a talent search that degraded to an empty result.
func (c *DataCollector) SearchFailed(_ context.Context, _ []string, _ error) {
	c.talentSearches.Add(1)
	c.talentFailures.Add(1)

	c.recordMetric(TypeTalentSearch, 0, Labels{"success": "false"})
}

// SearchSucceeded records a talent search and its hit count.
func (c *DataCollector) SearchSucceeded(_ context.Context, _ []string, hits int) {
	c.talentSearches.Add(1)
	c.talentHits.Add(int64(hits))

	c.recordMetric(TypeTalentSearch, int64(hits), Labels{"success": "true"})
}

// HealthCheck records health check metrics
func (c *DataCollector) HealthCheck(component string, healthy bool) {
	c.healthMu.Lock()
	if _, exists := c.healthChecks[component]; !exists {
		c.healthChecks[component] = &atomic.Bool{}
	}
	healthCheck := c.healthChecks[component]
	c.healthMu.Unlock()

	healthCheck.Store(healthy)

	c.recordMetric(TypeHealthCheck, boolToInt(healthy), Labels{
		"component": component,
	})
}

// recordMetric records a metric to storage
func (c *DataCollector) recordMetric(metricType string, value int64, labels Labels) {
	metric := Metric{
		Type:      metricType,
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now(),
	}

	c.bufferMu.Lock()
	c.buffer = append(c.buffer, metric)
	shouldFlush := len(c.buffer) >= c.batchSize
	c.bufferMu.Unlock()

	if shouldFlush {
		select {
		case c.flushCh <- struct{}{}:
		default:
		}
	}
}

// Flush writes buffered metrics to storage. A batch the storage rejects
// is dropped and counted in the storage stats.
func (c *DataCollector) Flush() error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	c.bufferMu.Lock()
	if len(c.buffer) == 0 {
		c.bufferMu.Unlock()
		return nil
	}

	metrics := make([]Metric, len(c.buffer))
	copy(metrics, c.buffer)
	c.buffer = c.buffer[:0]
	c.bufferMu.Unlock()

	if c.storage == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := c.storage.Store(ctx, metrics); err != nil {
		c.storeErrors.Add(1)
		c.droppedMetrics.Add(int64(len(metrics)))
		if c.logger != nil {
			c.logger.Warnf(ctx, "failed to store %d metrics: %v", len(metrics), err)
		}
		return err
	}
	return nil
}

// Query flushes pending metrics and queries storage
func (c *DataCollector) Query(query QueryRequest) ([]Metric, error) {
	if err := c.Flush(); err != nil {
		return nil, err
	}
	if c.storage == nil {
		return nil, nil
	}
	return c.storage.Query(query)
}

// GetStats returns current statistics
func (c *DataCollector) GetStats() map[string]any {
	c.healthMu.RLock()
	healthStatus := make(map[string]bool, len(c.healthChecks))
	for component, status := range c.healthChecks {
		healthStatus[component] = status.Load()
	}
	c.healthMu.RUnlock()

	return map[string]any{
		"search": map[string]any{
			"queries":    c.searchQueries.Load(),
			"errors":     c.searchErrors.Load(),
			"last_query": c.lastSearchQuery.Load(),
		},
		"talents": map[string]any{
			"searches": c.talentSearches.Load(),
			"failures": c.talentFailures.Load(),
			"hits":     c.talentHits.Load(),
		},
		"storage": map[string]any{
			"errors":  c.storeErrors.Load(),
			"dropped": c.droppedMetrics.Load(),
		},
		"health":    healthStatus,
		"timestamp": time.Now(),
	}
}

// Close stops background flushing, flushes remaining metrics and closes
// the storage.
func (c *DataCollector) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()

	flushErr := c.Flush()
	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			return err
		}
	}
	return flushErr
}

// Helper functions
func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
