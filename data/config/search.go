package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultTalentIndex is the index searched when none is configured.
const DefaultTalentIndex = "talents"

// Search represents search engine configuration
type Search struct {
	DefaultEngine  string         `yaml:"default_engine" json:"default_engine"`
	DefaultIndexes []string       `yaml:"default_indexes" json:"default_indexes"`
	Size           int            `yaml:"size" json:"size"`
	HealthInterval time.Duration  `yaml:"health_interval" json:"health_interval"`
	Breaker        *Breaker       `yaml:"breaker" json:"breaker"`
	Meilisearch    *Meilisearch   `yaml:"meilisearch" json:"meilisearch"`
	Elasticsearch  *Elasticsearch `yaml:"elasticsearch" json:"elasticsearch"`
	OpenSearch     *OpenSearch    `yaml:"opensearch" json:"opensearch"`
}

// Breaker configures the circuit breaker wrapped around each engine.
type Breaker struct {
	Enabled      bool          `yaml:"enabled" json:"enabled"`
	MaxRequests  uint32        `yaml:"max_requests" json:"max_requests"`
	Interval     time.Duration `yaml:"interval" json:"interval"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	MinRequests  uint32        `yaml:"min_requests" json:"min_requests"`
	FailureRatio float64       `yaml:"failure_ratio" json:"failure_ratio"`
}

// getSearchConfig reads search configurations
func getSearchConfig(v *viper.Viper) *Search {
	return &Search{
		DefaultEngine:  getStringOrDefault(v, "data.search.default_engine", "elasticsearch"),
		DefaultIndexes: getSearchDefaultIndexes(v),
		Size:           getIntOrDefault(v, "data.search.size", 0),
		HealthInterval: getDurationOrDefault(v, "data.search.health_interval", 30*time.Second),
		Breaker:        getBreakerConfig(v),
		Meilisearch:    getMeilisearchConfigs(v),
		Elasticsearch:  getElasticsearchConfigs(v),
		OpenSearch:     getOpenSearchConfigs(v),
	}
}

// getSearchDefaultIndexes gets the indexes searched when a request names none
func getSearchDefaultIndexes(v *viper.Viper) []string {
	indexes := v.GetStringSlice("data.search.default_indexes")
	if len(indexes) == 0 {
		return []string{DefaultTalentIndex}
	}
	return indexes
}

// getBreakerConfig reads circuit breaker settings
func getBreakerConfig(v *viper.Viper) *Breaker {
	b := &Breaker{
		Enabled:      v.GetBool("data.search.breaker.enabled"),
		MaxRequests:  uint32(getIntOrDefault(v, "data.search.breaker.max_requests", 5)),
		Interval:     10 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  uint32(getIntOrDefault(v, "data.search.breaker.min_requests", 3)),
		FailureRatio: 0.6,
	}
	if v.IsSet("data.search.breaker.interval") {
		b.Interval = v.GetDuration("data.search.breaker.interval")
	}
	if v.IsSet("data.search.breaker.timeout") {
		b.Timeout = v.GetDuration("data.search.breaker.timeout")
	}
	if v.IsSet("data.search.breaker.failure_ratio") {
		b.FailureRatio = v.GetFloat64("data.search.breaker.failure_ratio")
	}
	return b
}

// OpenSearch opensearch config struct
type OpenSearch struct {
	Addresses       []string `json:"addresses" yaml:"addresses"`
	Username        string   `json:"username" yaml:"username"`
	Password        string   `json:"password" yaml:"password"`
	InsecureSkipTLS bool     `json:"insecure_skip_tls" yaml:"insecure_skip_tls"`
}

// Enabled reports whether OpenSearch is configured.
func (o *OpenSearch) Enabled() bool {
	return o != nil && len(o.Addresses) > 0
}

// getOpenSearchConfigs reads OpenSearch configurations
func getOpenSearchConfigs(v *viper.Viper) *OpenSearch {
	// Prefer `data.search.opensearch.*` but keep backward compatibility with `data.opensearch.*`.
	addresses := v.GetStringSlice("data.search.opensearch.addresses")
	if len(addresses) == 0 {
		addresses = v.GetStringSlice("data.opensearch.addresses")
	}

	username := v.GetString("data.search.opensearch.username")
	if username == "" {
		username = v.GetString("data.opensearch.username")
	}

	password := v.GetString("data.search.opensearch.password")
	if password == "" {
		password = v.GetString("data.opensearch.password")
	}

	insecureSkipTLS := v.GetBool("data.search.opensearch.insecure_skip_tls")
	if !v.IsSet("data.search.opensearch.insecure_skip_tls") {
		insecureSkipTLS = v.GetBool("data.opensearch.insecure_skip_tls")
	}

	return &OpenSearch{
		Addresses:       addresses,
		Username:        username,
		Password:        password,
		InsecureSkipTLS: insecureSkipTLS,
	}
}

// Elasticsearch elasticsearch config struct
type Elasticsearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

// Enabled reports whether Elasticsearch is configured.
func (e *Elasticsearch) Enabled() bool {
	return e != nil && len(e.Addresses) > 0
}

// getElasticsearchConfigs reads Elasticsearch configurations
func getElasticsearchConfigs(v *viper.Viper) *Elasticsearch {
	// Prefer `data.search.elasticsearch.*` but keep backward compatibility with `data.elasticsearch.*`.
	addresses := v.GetStringSlice("data.search.elasticsearch.addresses")
	if len(addresses) == 0 {
		addresses = v.GetStringSlice("data.elasticsearch.addresses")
	}

	username := v.GetString("data.search.elasticsearch.username")
	if username == "" {
		username = v.GetString("data.elasticsearch.username")
	}

	password := v.GetString("data.search.elasticsearch.password")
	if password == "" {
		password = v.GetString("data.elasticsearch.password")
	}

	return &Elasticsearch{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	}
}

// Meilisearch meilisearch config struct
type Meilisearch struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

// Enabled reports whether Meilisearch is configured.
func (m *Meilisearch) Enabled() bool {
	return m != nil && m.Host != ""
}

// getMeilisearchConfigs reads Meilisearch configurations
func getMeilisearchConfigs(v *viper.Viper) *Meilisearch {
	// Prefer `data.search.meilisearch.*` but keep backward compatibility with `data.meilisearch.*`.
	host := v.GetString("data.search.meilisearch.host")
	if host == "" {
		host = v.GetString("data.meilisearch.host")
	}

	apiKey := v.GetString("data.search.meilisearch.api_key")
	if apiKey == "" {
		apiKey = v.GetString("data.meilisearch.api_key")
	}

	return &Meilisearch{
		Host:   host,
		APIKey: apiKey,
	}
}
