// types.go
package query

import (
	"github.com/SanteonNL/pokedex/models/pokemon"
)

// DefaultPageSize is the number of entries shown per page when none is given.
const DefaultPageSize = 20

// Filters holds the optional attribute predicates. A nil field places no constraint.
// Range bounds are inclusive.
type Filters struct {
	PrimaryType    *pokemon.Type
	SecondaryType  *pokemon.Type
	MinHeight      *float64
	MaxHeight      *float64
	MinWeight      *float64
	MaxWeight      *float64
	MinCaptureRate *int
	MaxCaptureRate *int
	Legendary      *bool
}

// State is the caller-owned search, filter, sort and paging selection.
type State struct {
	SearchTerm string
	Filters    Filters
	SortKey    SortKey
	PageIndex  int // 1-based
	PageSize   int
}

// Result is one computed page plus the metadata needed to render navigation.
type Result struct {
	Items        []pokemon.Pokemon `json:"items"`
	PageIndex    int               `json:"page"`
	PageSize     int               `json:"pageSize"`
	TotalPages   int               `json:"totalPages"`
	TotalMatches int               `json:"total"`
}

// Issue describes raw input that was ignored while building a State.
type Issue struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}
