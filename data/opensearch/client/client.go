package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// Client OpenSearch client
type Client struct {
	client *opensearchapi.Client
}

// NewClient creates a new OpenSearch client
func NewClient(addresses []string, username, password string, insecure bool) (*Client, error) {
	if len(addresses) == 0 {
		return &Client{client: nil}, nil
	}

	// Configure transport with TLS options
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: insecure,
		},
	}

	client, err := opensearchapi.NewClient(
		opensearchapi.Config{
			Client: opensearch.Config{
				Addresses:    addresses,
				Username:     username,
				Password:     password,
				Transport:    transport,
				DisableRetry: true,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("opensearch client creation error: %w", err)
	}

	return &Client{client: client}, nil
}

// Search performs a search over indexes in OpenSearch
func (c *Client) Search(ctx context.Context, indexes []string, body []byte) (*opensearchapi.SearchResp, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("opensearch client is nil, cannot perform search")
	}

	res, err := c.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: indexes,
		Body:    bytes.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch search error: %w", err)
	}

	return res, nil
}

// Health checks cluster health
func (c *Client) Health(ctx context.Context) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("opensearch client is nil, cannot check health")
	}

	res, err := c.client.Cluster.Health(ctx, &opensearchapi.ClusterHealthReq{})
	if err != nil {
		return "", fmt.Errorf("opensearch health check error: %w", err)
	}

	return res.Status, nil
}
