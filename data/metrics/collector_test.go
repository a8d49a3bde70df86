package metrics

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/logging/logger"
	"github.com/redis/go-redis/v9"
)

type failingStorage struct {
	mu       sync.Mutex
	calls    int
	stored   int
	deadline bool
}

func (f *failingStorage) Store(ctx context.Context, metrics []Metric) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.stored += len(metrics)
	_, f.deadline = ctx.Deadline()
	return errors.New("redis: connection refused")
}

func (f *failingStorage) Query(QueryRequest) ([]Metric, error) { return nil, nil }
func (f *failingStorage) Close() error                         { return nil }

func TestDataCollector_SearchQuery(t *testing.T) {
	c := NewDataCollector(10)

	c.SearchQuery("elasticsearch", nil)
	c.SearchQuery("elasticsearch", errors.New("timeout"))
	c.SearchQuery("meilisearch", nil)

	stats := c.GetStats()["search"].(map[string]any)
	if stats["queries"] != int64(3) || stats["errors"] != int64(1) {
		t.Errorf("unexpected search stats %v", stats)
	}
	if last := stats["last_query"].(time.Time); last.IsZero() {
		t.Error("expected last query time to be set")
	}

	failed, err := c.Query(QueryRequest{Type: TypeSearchQuery, Labels: Labels{"success": "false"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(failed) != 1 || failed[0].Labels["engine"] != "elasticsearch" {
		t.Errorf("unexpected failed queries %+v", failed)
	}
}

func TestDataCollector_Observer(t *testing.T) {
	c := NewDataCollector(1)
	ctx := context.Background()

	c.SearchSucceeded(ctx, []string{"talents"}, 4)
	c.SearchSucceeded(ctx, []string{"talents"}, 0)
	c.SearchFailed(ctx, []string{"talents"}, errors.New("boom"))

	stats := c.GetStats()["talents"].(map[string]any)
	if stats["searches"] != int64(3) || stats["failures"] != int64(1) || stats["hits"] != int64(4) {
		t.Errorf("unexpected talent stats %v", stats)
	}
}

func TestDataCollector_Concurrent(t *testing.T) {
	c := NewDataCollector(7)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.SearchQuery("opensearch", nil)
			}
		}()
	}
	wg.Wait()

	all, err := c.Query(QueryRequest{Type: TypeSearchQuery})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1000 {
		t.Errorf("expected 1000 stored metrics, got %d", len(all))
	}
}

func TestDataCollector_StorageFailures(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLogger()
	l.SetOutput(&buf)

	storage := &failingStorage{}
	c := NewDataCollectorWithStorage(storage, 2, WithLogger(l), WithFlushInterval(time.Hour))

	for i := 0; i < 4; i++ {
		c.SearchQuery("elasticsearch", nil)
	}
	_ = c.Close()

	storage.mu.Lock()
	calls, stored, deadline := storage.calls, storage.stored, storage.deadline
	storage.mu.Unlock()

	if calls == 0 || stored != 4 {
		t.Fatalf("expected all 4 metrics to reach storage, got %d in %d calls", stored, calls)
	}
	if !deadline {
		t.Error("expected store to run with a bounded context")
	}

	stats := c.GetStats()["storage"].(map[string]any)
	if stats["errors"] != int64(calls) || stats["dropped"] != int64(4) {
		t.Errorf("unexpected storage stats %v", stats)
	}
	if !strings.Contains(buf.String(), "failed to store") {
		t.Errorf("expected the failure to be logged, got %q", buf.String())
	}
}

func TestDataCollector_FlushesInBackground(t *testing.T) {
	storage := NewMemoryStorage()
	c := NewDataCollectorWithStorage(storage, 100, WithFlushInterval(10*time.Millisecond))
	defer c.Close()

	c.SearchQuery("opensearch", nil)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := storage.Query(QueryRequest{Type: TypeSearchQuery})
		if len(got) == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected the ticker to flush the partial batch")
}

func TestDataCollector_HealthCheck(t *testing.T) {
	c := NewDataCollector(0)
	c.HealthCheck("elasticsearch", true)
	c.HealthCheck("meilisearch", false)

	health := c.GetStats()["health"].(map[string]bool)
	if !health["elasticsearch"] || health["meilisearch"] {
		t.Errorf("unexpected health %v", health)
	}
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorageWithCapacity(3)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_ = s.Store(context.Background(), []Metric{{Type: TypeSearchQuery, Value: int64(i), Timestamp: base.Add(time.Duration(i) * time.Minute)}})
	}

	got, _ := s.Query(QueryRequest{Type: TypeSearchQuery})
	if len(got) != 3 || got[0].Value != 2 {
		t.Fatalf("expected the 3 most recent metrics, got %+v", got)
	}

	got, _ = s.Query(QueryRequest{StartTime: base.Add(3 * time.Minute), Limit: 1})
	if len(got) != 1 || got[0].Value != 3 {
		t.Errorf("unexpected time range result %+v", got)
	}
}

func TestRedisStorage_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	s := NewRedisStorage(client, "test", time.Hour)
	defer s.Close()

	if err := s.Store(context.Background(), []Metric{{Type: TypeSearchQuery, Timestamp: time.Now()}}); err == nil {
		t.Error("expected error from unreachable redis")
	}
	if _, err := s.Query(QueryRequest{}); err == nil {
		t.Error("expected error for untyped query")
	}
	if got := s.key(TypeTalentSearch); got != "test:metrics:talent_search" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Metrics
		wantErr bool
	}{
		{"nil", nil, false},
		{"disabled", &config.Metrics{Enabled: false}, false},
		{"memory", &config.Metrics{Enabled: true, Storage: "memory"}, false},
		{"redis", &config.Metrics{Enabled: true, Storage: "redis", Redis: &config.MetricsRedis{Addr: "localhost:6379"}}, false},
		{"redis without addr", &config.Metrics{Enabled: true, Storage: "redis", Redis: &config.MetricsRedis{}}, true},
		{"unknown", &config.Metrics{Enabled: true, Storage: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				_ = c.Close()
			}
		})
	}
}
