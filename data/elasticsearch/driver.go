// Package elasticsearch provides the Elasticsearch search adapter.
//
// The adapter uses go-elasticsearch/v8 (github.com/elastic/go-elasticsearch/v8)
// and registers itself with the search package when imported:
//
//	import _ "github.com/ncobase/talentsearch/data/elasticsearch"
//
// Queries are encoded with the querydsl package and sent to every index of
// the request in a single _search call.
package elasticsearch

import (
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/data/elasticsearch/client"
)

// Connect creates an Elasticsearch client from the configuration.
//
// Example addresses:
//
//	[]string{"http://localhost:9200"}
//	[]string{"https://es1.example.com:9200", "https://es2.example.com:9200"}
func Connect(cfg *config.Elasticsearch) (*client.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("elasticsearch: invalid configuration, expected *config.Elasticsearch")
	}

	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch: addresses are empty")
	}

	c, err := client.NewClient(cfg.Addresses, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	return c, nil
}
