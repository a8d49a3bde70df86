package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/data/opensearch/client"
	"github.com/ncobase/talentsearch/data/search"
	"github.com/ncobase/talentsearch/data/search/querydsl"
)

func init() {
	search.RegisterAdapterFactory(search.OpenSearch, func(cfg *config.Search) (search.Adapter, error) {
		if cfg == nil || !cfg.OpenSearch.Enabled() {
			return nil, nil
		}
		c, err := Connect(cfg.OpenSearch)
		if err != nil {
			return nil, err
		}
		return NewAdapter(c), nil
	})
}

// Adapter runs search requests on OpenSearch.
type Adapter struct {
	client *client.Client
}

func NewAdapter(c *client.Client) *Adapter {
	return &Adapter{client: c}
}

func (a *Adapter) Type() search.Engine {
	return search.OpenSearch
}

func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if a.client == nil {
		return nil, errors.New("opensearch client not available")
	}

	body, err := querydsl.Marshal(req.Query, req.Sort, req.Size)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := a.client.Search(ctx, req.Indexes, body)
	if err != nil {
		return nil, err
	}

	hits := make([]search.Hit, len(res.Hits.Hits))
	for i, hit := range res.Hits.Hits {
		source, err := decodeSource(hit.Source)
		if err != nil {
			return nil, fmt.Errorf("hit %s: %w", hit.ID, err)
		}
		hits[i] = search.Hit{ID: hit.ID, Index: hit.Index, Source: source}
	}

	return &search.Response{
		Total: int64(res.Hits.Total.Value),
		Hits:  hits,
	}, nil
}

func (a *Adapter) Health(ctx context.Context) error {
	if a.client == nil {
		return errors.New("opensearch client not available")
	}
	status, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if status == "red" {
		return fmt.Errorf("opensearch cluster status is %s", status)
	}
	return nil
}

func decodeSource(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var source map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&source); err != nil {
		return nil, fmt.Errorf("decode _source: %w", err)
	}
	return source, nil
}
