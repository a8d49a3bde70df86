package search

import (
	"cmp"
	"slices"
)

// Kind identifies the variant held by a Filter.
type Kind int

const (
	KindTerm Kind = iota + 1
	KindTerms
	KindRangeLte
	KindRangeGte
	KindAnd
	KindOr
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindTerm:
		return "term"
	case KindTerms:
		return "terms"
	case KindRangeLte:
		return "range_lte"
	case KindRangeGte:
		return "range_gte"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "unknown"
	}
}

// Filter is an engine-agnostic boolean filter tree.
//
// Leaves (Term, Terms, RangeLte, RangeGte) carry a Field and its value(s);
// And, Or and Not carry Children. Filters are built with the constructor
// functions below and never mutated afterwards.
type Filter struct {
	Kind     Kind
	Field    string
	Value    any
	Values   []any
	Format   string
	Children []Filter
}

// Term matches documents whose field equals value.
func Term(field string, value any) Filter {
	return Filter{Kind: KindTerm, Field: field, Value: value}
}

// Terms matches documents whose field equals any of values.
// Values are sorted and de-duplicated, so the resulting filter only
// depends on the set of values. ok is false when values is empty: an
// empty terms set would match nothing and callers must skip the clause.
func Terms[T cmp.Ordered](field string, values []T) (f Filter, ok bool) {
	if len(values) == 0 {
		return Filter{}, false
	}

	set := slices.Clone(values)
	slices.Sort(set)
	set = slices.Compact(set)

	anys := make([]any, len(set))
	for i, v := range set {
		anys[i] = v
	}
	return Filter{Kind: KindTerms, Field: field, Values: anys}, true
}

// RangeLte matches documents whose field is lower than or equal to value.
// format is an optional engine hint describing how value is encoded,
// e.g. "epoch_second".
func RangeLte(field string, value any, format string) Filter {
	return Filter{Kind: KindRangeLte, Field: field, Value: value, Format: format}
}

// RangeGte matches documents whose field is greater than or equal to value.
func RangeGte(field string, value any, format string) Filter {
	return Filter{Kind: KindRangeGte, Field: field, Value: value, Format: format}
}

// And requires every child to match.
func And(children ...Filter) Filter {
	return Filter{Kind: KindAnd, Children: children}
}

// Or requires at least one child to match.
func Or(children ...Filter) Filter {
	return Filter{Kind: KindOr, Children: children}
}

// Not negates child.
func Not(child Filter) Filter {
	return Filter{Kind: KindNot, Children: []Filter{child}}
}

// Query is a boolean query: every Must filter matches and no MustNot
// filter matches.
type Query struct {
	Must    []Filter
	MustNot []Filter
}

// Filter returns the query as a single filter tree.
func (q Query) Filter() Filter {
	children := slices.Clone(q.Must)
	for _, f := range q.MustNot {
		children = append(children, Not(f))
	}
	return And(children...)
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortField orders results by a single field.
type SortField struct {
	Field string
	Order Order
}

// Sort is an ordered list of sort fields.
type Sort []SortField
