package meilisearch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ncobase/talentsearch/data/search"
)

var errEmptyFilter = errors.New("filter matches nothing")

// Expression renders a query as a Meilisearch filter expression.
// An empty result means the query matches every document.
func Expression(q search.Query) (string, error) {
	return expression(q.Filter())
}

func expression(f search.Filter) (string, error) {
	switch f.Kind {
	case search.KindTerm:
		v, err := literal(f.Value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f.Field, err)
		}
		return f.Field + " = " + v, nil

	case search.KindTerms:
		values := make([]string, len(f.Values))
		for i, value := range f.Values {
			v, err := literal(value)
			if err != nil {
				return "", fmt.Errorf("%s: %w", f.Field, err)
			}
			values[i] = v
		}
		return f.Field + " IN [" + strings.Join(values, ", ") + "]", nil

	case search.KindRangeLte, search.KindRangeGte:
		v, err := literal(f.Value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f.Field, err)
		}
		op := " <= "
		if f.Kind == search.KindRangeGte {
			op = " >= "
		}
		return f.Field + op + v, nil

	case search.KindAnd:
		parts, err := children(f.Children)
		if err != nil {
			return "", err
		}
		return join(parts, " AND "), nil

	case search.KindOr:
		parts, err := children(f.Children)
		if err != nil {
			return "", err
		}
		// any empty branch matches everything
		if len(parts) < len(f.Children) {
			return "", nil
		}
		if len(parts) == 0 {
			return "", fmt.Errorf("or: %w", errEmptyFilter)
		}
		return join(parts, " OR "), nil

	case search.KindNot:
		if len(f.Children) != 1 {
			return "", fmt.Errorf("not: expected one child, got %d", len(f.Children))
		}
		inner, err := expression(f.Children[0])
		if err != nil {
			return "", err
		}
		if inner == "" {
			return "", fmt.Errorf("not: %w", errEmptyFilter)
		}
		return "NOT (" + inner + ")", nil
	}

	return "", fmt.Errorf("unsupported filter kind %s", f.Kind)
}

func children(filters []search.Filter) ([]string, error) {
	parts := make([]string, 0, len(filters))
	for _, child := range filters {
		s, err := expression(child)
		if err != nil {
			return nil, err
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts, nil
}

func join(parts []string, op string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	wrapped := make([]string, len(parts))
	for i, p := range parts {
		wrapped[i] = "(" + p + ")"
	}
	return strings.Join(wrapped, op)
}

func literal(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case int8, int16, uint, uint8, uint16, uint32:
		return fmt.Sprint(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("unsupported filter value %T", v)
}

// Sort renders sort fields as Meilisearch sort rules.
func Sort(sort search.Sort) []string {
	if len(sort) == 0 {
		return nil
	}
	rules := make([]string, len(sort))
	for i, s := range sort {
		order := s.Order
		if order == "" {
			order = search.Asc
		}
		rules[i] = s.Field + ":" + string(order)
	}
	return rules
}
