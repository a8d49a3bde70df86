package meilisearch

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ncobase/talentsearch/data/search"
)

func TestExpression(t *testing.T) {
	roles, _ := search.Terms("work_roles", []string{"Fullstack", "DevOps"})
	ids, _ := search.Terms("ids", []int64{42, 7})
	companies, _ := search.Terms("company_ids", []int64{3})

	visible := search.And(
		search.Term("accepted", true),
		search.RangeLte("batch_start_at", int64(1000), "epoch_second"),
		search.RangeGte("batch_end_at", int64(1000), "epoch_second"),
	)

	tests := []struct {
		name  string
		query search.Query
		want  string
	}{
		{"empty", search.Query{}, ""},
		{"term", search.Query{Must: []search.Filter{search.Term("accepted", true)}}, "accepted = true"},
		{"terms", search.Query{Must: []search.Filter{roles}}, `work_roles IN ["DevOps", "Fullstack"]`},
		{
			"visibility",
			search.Query{Must: []search.Filter{visible}},
			"(accepted = true) AND (batch_start_at <= 1000) AND (batch_end_at >= 1000)",
		},
		{
			"presented or visible",
			search.Query{Must: []search.Filter{search.Or(visible, ids)}},
			"((accepted = true) AND (batch_start_at <= 1000) AND (batch_end_at >= 1000)) OR (ids IN [7, 42])",
		},
		{
			"must not",
			search.Query{Must: []search.Filter{roles}, MustNot: []search.Filter{companies}},
			`(work_roles IN ["DevOps", "Fullstack"]) AND (NOT (company_ids IN [3]))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expression(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestExpression_Errors(t *testing.T) {
	tests := []struct {
		name   string
		filter search.Filter
	}{
		{"unknown kind", search.Filter{}},
		{"empty or", search.Or()},
		{"not of match all", search.Not(search.And())},
		{"unsupported value", search.Term("tags", []string{"a"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Expression(search.Query{Must: []search.Filter{tt.filter}}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLiteral(t *testing.T) {
	for in, want := range map[any]string{
		`say "hi"`:         `"say \"hi\""`,
		false:              "false",
		uint8(4):           "4",
		1.5:                "1.5",
		json.Number("1e3"): "1e3",
		int64(1700000000):  "1700000000",
	} {
		got, err := literal(in)
		if err != nil || got != want {
			t.Errorf("literal(%v) = %q, %v; want %q", in, got, err, want)
		}
	}
}

func TestSort(t *testing.T) {
	got := Sort(search.Sort{{Field: "updated_at", Order: search.Desc}, {Field: "name"}})
	if want := []string{"updated_at:desc", "name:asc"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if Sort(nil) != nil {
		t.Error("expected nil rules for empty sort")
	}
}
