// Package meilisearch provides the Meilisearch search adapter.
//
// Filter trees are rendered as Meilisearch filter expressions and every
// index of a request is queried through one federated multi-search, so
// hits from several indexes come back in a single sorted list. The
// package registers itself with the search package when imported:
//
//	import _ "github.com/ncobase/talentsearch/data/meilisearch"
//
// Fields used in filters and sorts must be declared filterable and
// sortable in the index settings.
package meilisearch

import (
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/data/meilisearch/client"
)

// Connect creates a Meilisearch client from the configuration.
func Connect(cfg *config.Meilisearch) (*client.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("meilisearch: invalid configuration, expected *config.Meilisearch")
	}

	if cfg.Host == "" {
		return nil, fmt.Errorf("meilisearch: host is empty")
	}

	return client.NewMeilisearch(cfg.Host, cfg.APIKey), nil
}
