package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestSearchConfig_Defaults(t *testing.T) {
	s := GetConfig(viper.New()).Search

	if s.DefaultEngine != "elasticsearch" {
		t.Errorf("expected default engine elasticsearch, got %q", s.DefaultEngine)
	}
	if len(s.DefaultIndexes) != 1 || s.DefaultIndexes[0] != DefaultTalentIndex {
		t.Errorf("expected default indexes [%s], got %v", DefaultTalentIndex, s.DefaultIndexes)
	}
	if s.Size != 0 {
		t.Errorf("expected size 0, got %d", s.Size)
	}
	if s.HealthInterval != 30*time.Second {
		t.Errorf("expected health interval 30s, got %s", s.HealthInterval)
	}
	if s.Breaker == nil || s.Breaker.Enabled {
		t.Fatalf("expected disabled breaker, got %+v", s.Breaker)
	}
	if s.Elasticsearch.Enabled() || s.OpenSearch.Enabled() || s.Meilisearch.Enabled() {
		t.Error("expected no engine to be enabled without addresses")
	}
}

func TestSearchConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("data.search.default_engine", "meilisearch")
	v.Set("data.search.default_indexes", []string{"talents_a", "talents_b"})
	v.Set("data.search.size", 50)
	v.Set("data.search.health_interval", "10s")
	v.Set("data.search.breaker.enabled", true)
	v.Set("data.search.breaker.timeout", "5s")
	v.Set("data.search.breaker.failure_ratio", 0.5)
	v.Set("data.search.meilisearch.host", "http://meili:7700")

	s := GetConfig(v).Search
	if s.DefaultEngine != "meilisearch" {
		t.Errorf("expected meilisearch, got %q", s.DefaultEngine)
	}
	if len(s.DefaultIndexes) != 2 || s.DefaultIndexes[1] != "talents_b" {
		t.Errorf("unexpected default indexes %v", s.DefaultIndexes)
	}
	if s.Size != 50 {
		t.Errorf("expected size 50, got %d", s.Size)
	}
	if s.HealthInterval != 10*time.Second {
		t.Errorf("expected health interval 10s, got %s", s.HealthInterval)
	}
	if !s.Breaker.Enabled || s.Breaker.Timeout != 5*time.Second || s.Breaker.FailureRatio != 0.5 {
		t.Errorf("unexpected breaker config %+v", s.Breaker)
	}
	if !s.Meilisearch.Enabled() {
		t.Error("expected meilisearch to be enabled")
	}
}

func TestSearchEngineConfigs_PreferDataSearchNamespace(t *testing.T) {
	v := viper.New()

	v.Set("data.elasticsearch.addresses", []string{"http://legacy:9200"})
	v.Set("data.elasticsearch.username", "legacy-user")

	v.Set("data.search.elasticsearch.addresses", []string{"http://search:9200"})
	v.Set("data.search.elasticsearch.username", "search-user")

	es := getElasticsearchConfigs(v)
	if len(es.Addresses) != 1 || es.Addresses[0] != "http://search:9200" {
		t.Fatalf("expected addresses from data.search.elasticsearch, got %v", es.Addresses)
	}
	if es.Username != "search-user" {
		t.Fatalf("expected username from data.search.elasticsearch, got %q", es.Username)
	}
}

func TestSearchEngineConfigs_FallbackToLegacyNamespace(t *testing.T) {
	v := viper.New()

	v.Set("data.opensearch.addresses", []string{"http://legacy:9200"})
	v.Set("data.opensearch.insecure_skip_tls", true)
	v.Set("data.meilisearch.host", "http://legacy:7700")

	os := getOpenSearchConfigs(v)
	if !os.Enabled() || os.Addresses[0] != "http://legacy:9200" {
		t.Fatalf("expected addresses from data.opensearch, got %v", os.Addresses)
	}
	if !os.InsecureSkipTLS {
		t.Fatal("expected insecure_skip_tls from data.opensearch")
	}

	ms := getMeilisearchConfigs(v)
	if ms.Host != "http://legacy:7700" {
		t.Fatalf("expected host from data.meilisearch, got %q", ms.Host)
	}
}

func TestMetricsConfig(t *testing.T) {
	m := GetConfig(viper.New()).Metrics
	if !m.Enabled || m.BatchSize != 100 || m.Storage != "memory" || m.FlushInterval != 10*time.Second {
		t.Errorf("unexpected defaults %+v", m)
	}
	if m.Redis.KeyPrefix != "talentsearch" || m.Redis.Retention != 7*24*time.Hour {
		t.Errorf("unexpected redis defaults %+v", m.Redis)
	}

	v := viper.New()
	v.Set("data.metrics.storage", "redis")
	v.Set("data.metrics.redis.addr", "redis:6379")
	v.Set("data.metrics.redis.retention", "24h")
	m = GetConfig(v).Metrics
	if m.Storage != "redis" || m.Redis.Addr != "redis:6379" || m.Redis.Retention != 24*time.Hour {
		t.Errorf("unexpected overrides %+v %+v", m, m.Redis)
	}
}
