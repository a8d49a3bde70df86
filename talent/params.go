package talent

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Parameter keys.
const (
	ParamCompanyID         = "company_id"
	ParamWorkRoles         = "work_roles"
	ParamWorkLanguages     = "work_languages"
	ParamWorkExperience    = "work_experience"
	ParamWorkLocations     = "work_locations"
	ParamWorkAuthorization = "work_authorization"
	ParamPresentedTalents  = "presented_talents"
	ParamEpoch             = "epoch"
	ParamIndex             = "index"
)

// Params holds raw search parameters. A value may be missing, a scalar or
// a list of scalars.
type Params map[string]any

// ResolvedParams are the typed search parameters. Missing or malformed
// values resolve to their zero value.
type ResolvedParams struct {
	CompanyIDs        []int64
	WorkRoles         []string
	WorkLanguages     []string
	WorkExperience    []string
	WorkLocations     []string
	WorkAuthorization []string
	PresentedTalents  []int64

	Epoch    int64
	HasEpoch bool

	Index string
}

// ResolveParams decodes p. A value of the wrong type is treated as absent.
func ResolveParams(p Params) ResolvedParams {
	r := ResolvedParams{
		CompanyIDs:        int64List(p[ParamCompanyID]),
		WorkRoles:         stringList(p[ParamWorkRoles]),
		WorkLanguages:     stringList(p[ParamWorkLanguages]),
		WorkExperience:    stringList(p[ParamWorkExperience]),
		WorkLocations:     stringList(p[ParamWorkLocations]),
		WorkAuthorization: stringList(p[ParamWorkAuthorization]),
		PresentedTalents:  int64List(p[ParamPresentedTalents]),
	}

	if v, ok := p[ParamEpoch]; ok {
		r.Epoch, r.HasEpoch = toInt64(v)
	}
	if s, ok := p[ParamIndex].(string); ok {
		r.Index = strings.TrimSpace(s)
	}

	return r
}

func stringList(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}

func int64List(v any) []int64 {
	if v == nil {
		return nil
	}
	if n, ok := toInt64(v); ok {
		return []int64{n}
	}

	var elems []any
	switch v := v.(type) {
	case []int64:
		return v
	case []any:
		elems = v
	case []int:
		elems = make([]any, len(v))
		for i, e := range v {
			elems[i] = e
		}
	case []string:
		elems = make([]any, len(v))
		for i, e := range v {
			elems[i] = e
		}
	default:
		return nil
	}

	out := make([]int64, 0, len(elems))
	for _, e := range elems {
		n, ok := toInt64(e)
		if !ok {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// toInt64 accepts integer kinds, integral floats, json.Number and base 10
// strings.
func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case bool:
		return 0, false
	case float64:
		return integral(v)
	case float32:
		return integral(float64(v))
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToInt64E(v)
		return n, err == nil
	}
	return 0, false
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
