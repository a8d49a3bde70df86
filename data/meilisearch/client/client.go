package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// Client Meilisearch client wrapper
type Client struct {
	client meilisearch.ServiceManager
}

// NewMeilisearch creates new Meilisearch client
func NewMeilisearch(host, apiKey string) *Client {
	if host == "" {
		return &Client{client: nil}
	}
	ms := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return &Client{client: ms}
}

// MultiSearch performs multi-index search
func (c *Client) MultiSearch(ctx context.Context, queries *meilisearch.MultiSearchRequest) (*meilisearch.MultiSearchResponse, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("meilisearch client is nil, cannot perform multi-search")
	}

	resp, err := c.client.MultiSearchWithContext(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("meilisearch multi-search error: %w", err)
	}
	return resp, nil
}

// Health checks if Meilisearch is healthy
func (c *Client) Health(ctx context.Context) (*meilisearch.Health, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("meilisearch client is nil, cannot check health")
	}

	health, err := c.client.HealthWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("meilisearch health check error: %w", err)
	}
	return health, nil
}
