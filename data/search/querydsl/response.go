package querydsl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ncobase/talentsearch/data/search"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Index  string         `json:"_index"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// DecodeResponse decodes a search response body into hits, preserving
// the order returned by the engine.
func DecodeResponse(r io.Reader) (*search.Response, error) {
	var sr searchResponse
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]search.Hit, len(sr.Hits.Hits))
	for i, h := range sr.Hits.Hits {
		hits[i] = search.Hit{ID: h.ID, Index: h.Index, Source: h.Source}
	}

	return &search.Response{
		Total: sr.Hits.Total.Value,
		Hits:  hits,
	}, nil
}
