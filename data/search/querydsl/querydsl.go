// Package querydsl encodes search queries into the JSON query DSL shared by
// Elasticsearch and OpenSearch.
//
// The filter tree is evaluated in filter context: the top-level query is a
// bool query whose filter clause holds the encoded Must and MustNot
// filters, so hits are not scored and ordering comes from the sort only.
package querydsl

import (
	"encoding/json"
	"fmt"

	"github.com/ncobase/talentsearch/data/search"
)

// M is a JSON object.
type M = map[string]any

// Body builds the search request body for query, sort and size.
// A zero size leaves the engine default in place.
func Body(q search.Query, sort search.Sort, size int) (M, error) {
	query, err := Query(q)
	if err != nil {
		return nil, err
	}

	body := M{"query": query}
	if len(sort) > 0 {
		body["sort"] = Sort(sort)
	}
	if size > 0 {
		body["size"] = size
	}
	return body, nil
}

// Marshal encodes the search request body as JSON.
func Marshal(q search.Query, sort search.Sort, size int) ([]byte, error) {
	body, err := Body(q, sort, size)
	if err != nil {
		return nil, err
	}
	return json.Marshal(body)
}

// Query encodes q as a bool query in filter context.
func Query(q search.Query) (M, error) {
	inner := M{}

	if len(q.Must) > 0 {
		must, err := filters(q.Must)
		if err != nil {
			return nil, err
		}
		inner["must"] = must
	}
	if len(q.MustNot) > 0 {
		mustNot, err := filters(q.MustNot)
		if err != nil {
			return nil, err
		}
		inner["must_not"] = mustNot
	}

	return M{"bool": M{"filter": M{"bool": inner}}}, nil
}

// Filter encodes a single filter tree.
func Filter(f search.Filter) (M, error) {
	switch f.Kind {
	case search.KindTerm:
		return M{"term": M{f.Field: f.Value}}, nil
	case search.KindTerms:
		return M{"terms": M{f.Field: f.Values}}, nil
	case search.KindRangeLte:
		return M{"range": M{f.Field: rangeBound("lte", f)}}, nil
	case search.KindRangeGte:
		return M{"range": M{f.Field: rangeBound("gte", f)}}, nil
	case search.KindAnd:
		children, err := filters(f.Children)
		if err != nil {
			return nil, err
		}
		return M{"bool": M{"must": children}}, nil
	case search.KindOr:
		children, err := filters(f.Children)
		if err != nil {
			return nil, err
		}
		return M{"bool": M{"should": children, "minimum_should_match": 1}}, nil
	case search.KindNot:
		children, err := filters(f.Children)
		if err != nil {
			return nil, err
		}
		return M{"bool": M{"must_not": children}}, nil
	default:
		return nil, fmt.Errorf("querydsl: unsupported filter kind %d", f.Kind)
	}
}

// Sort encodes sort fields, e.g. [{"updated_at": {"order": "desc"}}].
func Sort(sort search.Sort) []M {
	out := make([]M, len(sort))
	for i, s := range sort {
		order := s.Order
		if order == "" {
			order = search.Asc
		}
		out[i] = M{s.Field: M{"order": string(order)}}
	}
	return out
}

func rangeBound(op string, f search.Filter) M {
	bound := M{op: f.Value}
	if f.Format != "" {
		bound["format"] = f.Format
	}
	return bound
}

func filters(fs []search.Filter) ([]M, error) {
	out := make([]M, 0, len(fs))
	for _, f := range fs {
		m, err := Filter(f)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
