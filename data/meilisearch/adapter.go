package meilisearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/data/meilisearch/client"
	"github.com/ncobase/talentsearch/data/search"
)

const federationKey = "_federation"

func init() {
	search.RegisterAdapterFactory(search.Meilisearch, func(cfg *config.Search) (search.Adapter, error) {
		if cfg == nil || !cfg.Meilisearch.Enabled() {
			return nil, nil
		}
		c, err := Connect(cfg.Meilisearch)
		if err != nil {
			return nil, err
		}
		return NewAdapter(c), nil
	})
}

type Adapter struct {
	client *client.Client
}

func NewAdapter(c *client.Client) *Adapter {
	return &Adapter{client: c}
}

func (a *Adapter) Type() search.Engine {
	return search.Meilisearch
}

func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if a.client == nil {
		return nil, errors.New("meilisearch client not available")
	}

	filter, err := Expression(req.Query)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	msReq := &meilisearch.MultiSearchRequest{
		Federation: &meilisearch.MultiSearchFederation{},
		Queries:    make([]*meilisearch.SearchRequest, len(req.Indexes)),
	}
	if req.Size > 0 {
		msReq.Federation.Limit = int64(req.Size)
	}
	for i, index := range req.Indexes {
		q := &meilisearch.SearchRequest{
			IndexUID: index,
			Sort:     Sort(req.Sort),
		}
		if filter != "" {
			q.Filter = filter
		}
		msReq.Queries[i] = q
	}

	msResp, err := a.client.MultiSearch(ctx, msReq)
	if err != nil {
		return nil, err
	}

	hits := make([]search.Hit, len(msResp.Hits))
	for i, hit := range msResp.Hits {
		h, err := decodeHit(hit)
		if err != nil {
			return nil, fmt.Errorf("hit %d: %w", i, err)
		}
		hits[i] = h
	}

	return &search.Response{
		Total: msResp.EstimatedTotalHits,
		Hits:  hits,
	}, nil
}

func (a *Adapter) Health(ctx context.Context) error {
	if a.client == nil {
		return errors.New("meilisearch client not available")
	}
	health, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if health.Status != "available" {
		return fmt.Errorf("meilisearch status is %q", health.Status)
	}
	return nil
}

// decodeHit converts a federated hit into a search hit. The document id
// is kept in its textual form; numeric ids are not quoted.
func decodeHit(hit meilisearch.Hit) (search.Hit, error) {
	var h search.Hit
	h.Source = make(map[string]any, len(hit))

	for k, raw := range hit {
		if k == federationKey {
			var fed struct {
				IndexUID string `json:"indexUid"`
			}
			if err := json.Unmarshal(raw, &fed); err != nil {
				return h, fmt.Errorf("decode %s: %w", federationKey, err)
			}
			h.Index = fed.IndexUID
			continue
		}

		var v any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return h, fmt.Errorf("decode %s: %w", k, err)
		}
		h.Source[k] = v
	}

	switch id := h.Source["id"].(type) {
	case string:
		h.ID = id
	case json.Number:
		h.ID = id.String()
	}
	return h, nil
}
