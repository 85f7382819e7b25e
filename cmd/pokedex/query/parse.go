package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/SanteonNL/pokedex/models/pokemon"
)

// Raw filter field names, as used by the filter form and the HTTP API.
const (
	FieldPrimaryType    = "primaryType"
	FieldSecondaryType  = "secondaryType"
	FieldMinHeight      = "minHeight"
	FieldMaxHeight      = "maxHeight"
	FieldMinWeight      = "minWeight"
	FieldMaxWeight      = "maxWeight"
	FieldMinCaptureRate = "minCaptureRate"
	FieldMaxCaptureRate = "maxCaptureRate"
	FieldLegendary      = "legendary"

	FieldSort = "sort"
)

// FilterFields lists the raw filter field names in form order.
var FilterFields = []string{
	FieldPrimaryType,
	FieldSecondaryType,
	FieldMinHeight,
	FieldMaxHeight,
	FieldMinWeight,
	FieldMaxWeight,
	FieldMinCaptureRate,
	FieldMaxCaptureRate,
	FieldLegendary,
}

// ParseFilters converts raw form values into Filters. Empty values are unset.
// Values that cannot be parsed leave their filter unset and are reported as issues;
// a malformed bound never excludes entries.
func ParseFilters(raw map[string]string) (Filters, []Issue) {
	var (
		f      Filters
		issues []Issue
	)

	for _, field := range FilterFields {
		value := strings.TrimSpace(raw[field])
		if value == "" {
			continue
		}
		if issue := f.set(field, value); issue != nil {
			issues = append(issues, *issue)
		}
	}

	return f, issues
}

// FiltersFromValues reads the first value of each filter field from URL query values.
func FiltersFromValues(values url.Values) (Filters, []Issue) {
	raw := make(map[string]string, len(FilterFields))
	for _, field := range FilterFields {
		raw[field] = values.Get(field)
	}
	return ParseFilters(raw)
}

// Values is the inverse of FiltersFromValues: only set filters are encoded.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.PrimaryType != nil {
		v.Set(FieldPrimaryType, f.PrimaryType.String())
	}
	if f.SecondaryType != nil {
		v.Set(FieldSecondaryType, f.SecondaryType.String())
	}
	setFloat(v, FieldMinHeight, f.MinHeight)
	setFloat(v, FieldMaxHeight, f.MaxHeight)
	setFloat(v, FieldMinWeight, f.MinWeight)
	setFloat(v, FieldMaxWeight, f.MaxWeight)
	if f.MinCaptureRate != nil {
		v.Set(FieldMinCaptureRate, strconv.Itoa(*f.MinCaptureRate))
	}
	if f.MaxCaptureRate != nil {
		v.Set(FieldMaxCaptureRate, strconv.Itoa(*f.MaxCaptureRate))
	}
	if f.Legendary != nil {
		v.Set(FieldLegendary, strconv.FormatBool(*f.Legendary))
	}
	return v
}

func (f *Filters) set(field, value string) *Issue {
	switch field {
	case FieldPrimaryType, FieldSecondaryType:
		t, err := pokemon.ParseType(value)
		if err != nil {
			return &Issue{Field: field, Value: value, Message: "unknown type, filter ignored"}
		}
		if field == FieldPrimaryType {
			f.PrimaryType = &t
		} else {
			f.SecondaryType = &t
		}
	case FieldMinHeight, FieldMaxHeight, FieldMinWeight, FieldMaxWeight:
		n, ok := parseFloat(value)
		if !ok {
			return &Issue{Field: field, Value: value, Message: "not a number, bound ignored"}
		}
		switch field {
		case FieldMinHeight:
			f.MinHeight = &n
		case FieldMaxHeight:
			f.MaxHeight = &n
		case FieldMinWeight:
			f.MinWeight = &n
		case FieldMaxWeight:
			f.MaxWeight = &n
		}
	case FieldMinCaptureRate, FieldMaxCaptureRate:
		n, ok := parseInt(value)
		if !ok {
			return &Issue{Field: field, Value: value, Message: "not an integer, bound ignored"}
		}
		if field == FieldMinCaptureRate {
			f.MinCaptureRate = &n
		} else {
			f.MaxCaptureRate = &n
		}
	case FieldLegendary:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &Issue{Field: field, Value: value, Message: "expected true or false, filter ignored"}
		}
		f.Legendary = &b
	}
	return nil
}

func parseFloat(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// parseInt accepts whole numbers and truncates decimals ("45.9" is 45).
func parseInt(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, ok := parseFloat(s)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

func setFloat(v url.Values, field string, n *float64) {
	if n != nil {
		v.Set(field, strconv.FormatFloat(*n, 'f', -1, 64))
	}
}

// ParseSort is ParseSortKey for user input: an unrecognised value still sorts by number
// but is reported as an issue.
func ParseSort(raw string) (SortKey, *Issue) {
	raw = strings.TrimSpace(raw)
	key := ParseSortKey(raw)
	if raw == "" || strings.EqualFold(raw, key.String()) || strings.EqualFold(raw, key.Label()) {
		return key, nil
	}
	return key, &Issue{
		Field:   FieldSort,
		Value:   raw,
		Message: fmt.Sprintf("unknown sort key, sorting by %s", key),
	}
}
