package talent

import "github.com/ncobase/talentsearch/data/search"

// facets lists the string facets in the order their clauses are emitted.
var facets = []struct {
	field  string
	values func(p ResolvedParams) []string
}{
	{ParamWorkRoles, func(p ResolvedParams) []string { return p.WorkRoles }},
	{ParamWorkLanguages, func(p ResolvedParams) []string { return p.WorkLanguages }},
	{ParamWorkExperience, func(p ResolvedParams) []string { return p.WorkExperience }},
	{ParamWorkLocations, func(p ResolvedParams) []string { return p.WorkLocations }},
	{ParamWorkAuthorization, func(p ResolvedParams) []string { return p.WorkAuthorization }},
}

// BuildQuery composes the talent query: one terms clause per non-empty
// facet, the visibility rule at epoch, and the company exclusions.
func BuildQuery(p ResolvedParams, epoch int64) search.Query {
	var q search.Query

	for _, f := range facets {
		if clause, ok := search.Terms(f.field, f.values(p)); ok {
			q.Must = append(q.Must, clause)
		}
	}
	q.Must = append(q.Must, Visibility(epoch, p.PresentedTalents))

	// The same list excludes both the talent's companies and the companies
	// that blocked the talent.
	for _, field := range []string{FieldCompanyIDs, FieldBlockedCompanies} {
		if clause, ok := search.Terms(field, p.CompanyIDs); ok {
			q.MustNot = append(q.MustNot, clause)
		}
	}

	return q
}

// SortSpec is the fixed result order: most recently updated first.
func SortSpec() search.Sort {
	return search.Sort{{Field: FieldUpdatedAt, Order: search.Desc}}
}
