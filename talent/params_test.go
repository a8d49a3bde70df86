package talent

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResolveParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   ResolvedParams
	}{
		{"empty", Params{}, ResolvedParams{}},
		{"nil", nil, ResolvedParams{}},
		{
			"typed lists",
			Params{
				ParamWorkRoles:        []string{"Fullstack", "DevOps"},
				ParamCompanyID:        []int64{7, 8},
				ParamPresentedTalents: []int{42},
				ParamEpoch:            int64(1000),
				ParamIndex:            "talents_test",
			},
			ResolvedParams{
				WorkRoles:        []string{"Fullstack", "DevOps"},
				CompanyIDs:       []int64{7, 8},
				PresentedTalents: []int64{42},
				Epoch:            1000,
				HasEpoch:         true,
				Index:            "talents_test",
			},
		},
		{
			"decoded json",
			Params{
				ParamWorkLanguages: []any{"Go", "Rust"},
				ParamCompanyID:     []any{json.Number("7"), float64(8)},
				ParamEpoch:         json.Number("1700000000"),
			},
			ResolvedParams{
				WorkLanguages: []string{"Go", "Rust"},
				CompanyIDs:    []int64{7, 8},
				Epoch:         1700000000,
				HasEpoch:      true,
			},
		},
		{
			"scalars",
			Params{
				ParamWorkLocations: "Berlin",
				ParamCompanyID:     "7",
				ParamEpoch:         "1000",
			},
			ResolvedParams{
				WorkLocations: []string{"Berlin"},
				CompanyIDs:    []int64{7},
				Epoch:         1000,
				HasEpoch:      true,
			},
		},
		{
			"wrong types are absent",
			Params{
				ParamWorkRoles:         []any{"DevOps", 3},
				ParamWorkExperience:    42,
				ParamCompanyID:         []any{7, "x"},
				ParamPresentedTalents:  []float64{1.5},
				ParamEpoch:             "yesterday",
				ParamIndex:             []string{"talents"},
				ParamWorkAuthorization: map[string]any{"eu": true},
			},
			ResolvedParams{},
		},
		{
			"fractional epoch is absent",
			Params{ParamEpoch: 1000.5},
			ResolvedParams{},
		},
		{
			"blank index is absent",
			Params{ParamIndex: "  "},
			ResolvedParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveParams(tt.params)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	for _, v := range []any{int8(5), uint16(5), int32(5), uint64(5), float32(5), "5", " 5 "} {
		if n, ok := toInt64(v); !ok || n != 5 {
			t.Errorf("toInt64(%#v) = %d, %v", v, n, ok)
		}
	}
	for _, v := range []any{true, nil, "0x5", 1e19, []int{5}} {
		if _, ok := toInt64(v); ok {
			t.Errorf("toInt64(%#v) should fail", v)
		}
	}
}
