// Package opensearch provides the OpenSearch search adapter.
//
// It shares the query DSL encoding with the Elasticsearch adapter and
// registers itself with the search package when imported:
//
//	import _ "github.com/ncobase/talentsearch/data/opensearch"
package opensearch

import (
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/data/opensearch/client"
)

// Connect creates an OpenSearch client from the configuration.
func Connect(cfg *config.OpenSearch) (*client.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("opensearch: invalid configuration, expected *config.OpenSearch")
	}

	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("opensearch: addresses are empty")
	}

	c, err := client.NewClient(cfg.Addresses, cfg.Username, cfg.Password, cfg.InsecureSkipTLS)
	if err != nil {
		return nil, fmt.Errorf("opensearch: failed to create client: %w", err)
	}

	return c, nil
}
