package elasticsearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/talentsearch/data/config"
	"github.com/ncobase/talentsearch/data/elasticsearch/client"
	"github.com/ncobase/talentsearch/data/search"
	"github.com/ncobase/talentsearch/data/search/querydsl"
)

func init() {
	search.RegisterAdapterFactory(search.Elasticsearch, func(cfg *config.Search) (search.Adapter, error) {
		if cfg == nil || !cfg.Elasticsearch.Enabled() {
			return nil, nil
		}
		c, err := Connect(cfg.Elasticsearch)
		if err != nil {
			return nil, err
		}
		return NewAdapter(c), nil
	})
}

// Adapter runs search requests on Elasticsearch.
type Adapter struct {
	client *client.Client
}

func NewAdapter(c *client.Client) *Adapter {
	return &Adapter{client: c}
}

func (a *Adapter) Type() search.Engine {
	return search.Elasticsearch
}

func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if a.client == nil {
		return nil, errors.New("elasticsearch client not available")
	}

	body, err := querydsl.Marshal(req.Query, req.Sort, req.Size)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	rc, err := a.client.Search(ctx, req.Indexes, body)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return querydsl.DecodeResponse(rc)
}

func (a *Adapter) Health(ctx context.Context) error {
	if a.client == nil {
		return errors.New("elasticsearch client not available")
	}
	return a.client.Info(ctx)
}
