package talent

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ncobase/talentsearch/data/search"
	"github.com/ncobase/talentsearch/data/search/querydsl"
)

func visibleAt(epoch int64) search.Filter {
	return search.And(
		search.Term(FieldAccepted, true),
		search.RangeLte(FieldBatchStartAt, epoch, EpochFormat),
		search.RangeGte(FieldBatchEndAt, epoch, EpochFormat),
	)
}

func terms[T int64 | string](field string, values ...T) search.Filter {
	f, ok := search.Terms(field, values)
	if !ok {
		panic("empty terms")
	}
	return f
}

func TestVisibility(t *testing.T) {
	t.Run("without presented talents", func(t *testing.T) {
		for _, epoch := range []int64{0, 1000, 1700000000} {
			if got := Visibility(epoch, nil); !reflect.DeepEqual(got, visibleAt(epoch)) {
				t.Errorf("epoch %d: got %+v", epoch, got)
			}
			if got := Visibility(epoch, []int64{}); !reflect.DeepEqual(got, visibleAt(epoch)) {
				t.Errorf("epoch %d with empty list: got %+v", epoch, got)
			}
		}
	})

	t.Run("presented talents widen the rule", func(t *testing.T) {
		got := Visibility(1000, []int64{42, 7, 42})
		want := search.Or(visibleAt(1000), terms[int64](FieldID, 7, 42))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %+v\nwant %+v", got, want)
		}
	})
}

func TestBuildQuery_FacetsVisibilityExclusions(t *testing.T) {
	t.Run("facets and plain visibility", func(t *testing.T) {
		p := ResolveParams(Params{
			ParamWorkRoles:        []string{"Fullstack", "DevOps"},
			ParamWorkLanguages:    []string{},
			ParamPresentedTalents: []int64{},
		})
		q := BuildQuery(p, 1000)

		want := search.Query{Must: []search.Filter{
			terms(ParamWorkRoles, "DevOps", "Fullstack"),
			visibleAt(1000),
		}}
		if !reflect.DeepEqual(q, want) {
			t.Errorf("got %+v\nwant %+v", q, want)
		}
	})

	t.Run("presented talent", func(t *testing.T) {
		p := ResolveParams(Params{
			ParamWorkRoles:        []string{"Fullstack", "DevOps"},
			ParamPresentedTalents: []int64{42},
		})
		q := BuildQuery(p, 1000)

		last := q.Must[len(q.Must)-1]
		want := search.Or(visibleAt(1000), terms[int64](FieldID, 42))
		if !reflect.DeepEqual(last, want) {
			t.Errorf("got %+v\nwant %+v", last, want)
		}
	})

	t.Run("company exclusions", func(t *testing.T) {
		q := BuildQuery(ResolveParams(Params{ParamCompanyID: []int64{8, 7}}), 1000)

		want := []search.Filter{
			terms[int64](FieldCompanyIDs, 7, 8),
			terms[int64](FieldBlockedCompanies, 7, 8),
		}
		if !reflect.DeepEqual(q.MustNot, want) {
			t.Errorf("got %+v\nwant %+v", q.MustNot, want)
		}
		if !reflect.DeepEqual(q.MustNot[0].Values, q.MustNot[1].Values) {
			t.Error("exclusion clauses must reference the same values")
		}
	})
}

func TestBuildQuery_Properties(t *testing.T) {
	t.Run("empty facets add no clause", func(t *testing.T) {
		q := BuildQuery(ResolveParams(Params{
			ParamWorkRoles:         []string{},
			ParamWorkLanguages:     nil,
			ParamWorkExperience:    []any{},
			ParamWorkLocations:     []string{},
			ParamWorkAuthorization: []string{},
			ParamCompanyID:         []int64{},
		}), 1000)

		if len(q.Must) != 1 || !reflect.DeepEqual(q.Must[0], visibleAt(1000)) {
			t.Errorf("expected only the visibility clause, got %+v", q.Must)
		}
		if q.MustNot != nil {
			t.Errorf("expected no exclusions, got %+v", q.MustNot)
		}
	})

	t.Run("every facet is one clause in fixed order", func(t *testing.T) {
		q := BuildQuery(ResolveParams(Params{
			ParamWorkAuthorization: []string{"EU"},
			ParamWorkLocations:     []string{"Berlin", "Remote"},
			ParamWorkExperience:    []string{"5+"},
			ParamWorkLanguages:     []string{"Go"},
			ParamWorkRoles:         []string{"Backend"},
		}), 1000)

		var fields []string
		for _, f := range q.Must {
			fields = append(fields, f.Field)
		}
		want := []string{ParamWorkRoles, ParamWorkLanguages, ParamWorkExperience, ParamWorkLocations, ParamWorkAuthorization, ""}
		if !reflect.DeepEqual(fields, want) {
			t.Errorf("got fields %v, want %v", fields, want)
		}
	})

	t.Run("invariant under value order", func(t *testing.T) {
		a := BuildQuery(ResolveParams(Params{
			ParamWorkRoles:        []string{"Fullstack", "DevOps", "QA"},
			ParamCompanyID:        []int64{3, 1, 2},
			ParamPresentedTalents: []int64{9, 4},
		}), 1000)
		b := BuildQuery(ResolveParams(Params{
			ParamWorkRoles:        []string{"QA", "Fullstack", "DevOps", "QA"},
			ParamCompanyID:        []int64{2, 3, 1},
			ParamPresentedTalents: []int64{4, 9},
		}), 1000)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("queries differ:\n%+v\n%+v", a, b)
		}
	})

	t.Run("sort is fixed", func(t *testing.T) {
		want := search.Sort{{Field: "updated_at", Order: search.Desc}}
		if !reflect.DeepEqual(SortSpec(), want) {
			t.Errorf("got %+v", SortSpec())
		}
	})
}

func TestBuildQuery_ElasticsearchBody(t *testing.T) {
	q := BuildQuery(ResolveParams(Params{
		ParamWorkRoles:        []string{"DevOps"},
		ParamCompanyID:        []int64{7},
		ParamPresentedTalents: []int64{42},
	}), 1000)

	body, err := querydsl.Body(q, SortSpec(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{
		"query":{"bool":{"filter":{"bool":{
			"must":[
				{"terms":{"work_roles":["DevOps"]}},
				{"bool":{"minimum_should_match":1,"should":[
					{"bool":{"must":[
						{"term":{"accepted":true}},
						{"range":{"batch_start_at":{"lte":1000,"format":"epoch_second"}}},
						{"range":{"batch_end_at":{"gte":1000,"format":"epoch_second"}}}
					]}},
					{"terms":{"ids":[42]}}
				]}}
			],
			"must_not":[
				{"terms":{"company_ids":[7]}},
				{"terms":{"blocked_companies":[7]}}
			]
		}}}},
		"sort":[{"updated_at":{"order":"desc"}}]
	}`

	b, _ := json.Marshal(body)
	var got, expected any
	_ = json.Unmarshal(b, &got)
	if err := json.Unmarshal([]byte(want), &expected); err != nil {
		t.Fatalf("bad expectation: %v", err)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got %s", b)
	}
}
