package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Client Elasticsearch client
type Client struct {
	client *elasticsearch.Client
}

// NewClient new Elasticsearch client
func NewClient(addresses []string, username, password string) (*Client, error) {
	return NewClientWithTransport(addresses, username, password, nil)
}

// NewClientWithTransport creates a client using a custom HTTP transport.
// A nil transport keeps the library default.
func NewClientWithTransport(addresses []string, username, password string, transport http.RoundTripper) (*Client, error) {
	if len(addresses) == 0 {
		return &Client{client: nil}, nil
	}

	cfg := elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
		Transport: transport,
		// Searches are never retried; a failure degrades to no results upstream.
		DisableRetry: true,
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation error: %w", err)
	}

	return &Client{client: es}, nil
}

// Search runs body against indexes and returns the raw response body.
// The caller must close the returned reader.
func (c *Client) Search(ctx context.Context, indexes []string, body []byte) (io.ReadCloser, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("elasticsearch client is nil, cannot perform search")
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(indexes...),
		c.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search error: %w", err)
	}

	if res.IsError() {
		defer res.Body.Close()
		return nil, responseError("search", res)
	}

	return res.Body, nil
}

// Info checks the cluster is reachable.
func (c *Client) Info(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("elasticsearch client is nil, cannot check health")
	}

	res, err := c.client.Info(c.client.Info.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("info", res)
	}
	return nil
}

// IndexDocument index document to Elasticsearch
func (c *Client) IndexDocument(ctx context.Context, indexName string, document any) error {
	if c == nil || c.client == nil {
		return errors.New("elasticsearch client is nil, cannot index documents")
	}

	b, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}

	req := esapi.IndexRequest{
		Index: indexName,
		Body:  bytes.NewReader(b),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("elasticsearch indexing error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("indexing", res)
	}
	return nil
}

// responseError extracts the engine-reported error, e.g.
// {"error":{"type":"index_not_found_exception","reason":"..."}}.
func responseError(op string, res *esapi.Response) error {
	var body struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.Error.Type == "" {
		return fmt.Errorf("elasticsearch %s error: %s", op, res.Status())
	}
	return fmt.Errorf("elasticsearch %s error: %s: %s: %s", op, res.Status(), body.Error.Type, body.Error.Reason)
}
