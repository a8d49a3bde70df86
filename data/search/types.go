package search

import (
	"context"
	"time"
)

// Engine represents search engine type
type Engine string

const (
	Elasticsearch Engine = "elasticsearch"
	OpenSearch    Engine = "opensearch"
	Meilisearch   Engine = "meilisearch"
)

// Request represents unified search request
type Request struct {
	Indexes []string `json:"indexes"`
	Query   Query    `json:"query"`
	Sort    Sort     `json:"sort,omitempty"`
	// Size caps the number of hits; zero keeps the engine default.
	Size int `json:"size,omitempty"`
}

// Response represents unified search response
type Response struct {
	Total    int64         `json:"total"`
	Hits     []Hit         `json:"hits"`
	Duration time.Duration `json:"duration"`
	Engine   Engine        `json:"engine"`
}

// Hit represents search result item
type Hit struct {
	ID     string         `json:"id"`
	Index  string         `json:"index,omitempty"`
	Source map[string]any `json:"source"`
}

// Backend executes a search request against one or more indexes.
type Backend interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Adapter interface for search engine implementations
type Adapter interface {
	Backend
	Health(ctx context.Context) error
	Type() Engine
}

// Collector interface for metrics
type Collector interface {
	SearchQuery(engine string, err error)
}

// NoOpCollector implementation
type NoOpCollector struct{}

func (NoOpCollector) SearchQuery(string, error) {}
