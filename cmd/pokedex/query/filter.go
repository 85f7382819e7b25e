package query

import (
	"strings"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"golang.org/x/exp/constraints"
)

// ApplyFilters returns the entities that match the search term and every set filter,
// in their original order. The input slice is not modified.
func ApplyFilters(entities []pokemon.Pokemon, searchTerm string, filters Filters) []pokemon.Pokemon {
	if searchTerm == "" && filters.IsZero() {
		return append(make([]pokemon.Pokemon, 0, len(entities)), entities...)
	}

	term := strings.ToLower(searchTerm)
	filtered := make([]pokemon.Pokemon, 0, len(entities))
	for _, p := range entities {
		if matchesName(p, term) && filters.Match(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Match reports whether p satisfies all set predicates. The search term is not part of Filters.
func (f Filters) Match(p pokemon.Pokemon) bool {
	return f.matchTypes(p) &&
		inRange(p.Height, f.MinHeight, f.MaxHeight) &&
		inRange(p.Weight, f.MinWeight, f.MaxWeight) &&
		inRange(p.CaptureRate, f.MinCaptureRate, f.MaxCaptureRate) &&
		f.matchLegendary(p)
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

func matchesName(p pokemon.Pokemon, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), lowerTerm)
}

func (f Filters) matchTypes(p pokemon.Pokemon) bool {
	if f.PrimaryType != nil && p.PrimaryType != *f.PrimaryType {
		return false
	}
	if f.SecondaryType != nil && !p.HasSecondaryType(*f.SecondaryType) {
		return false
	}
	return true
}

func (f Filters) matchLegendary(p pokemon.Pokemon) bool {
	return f.Legendary == nil || *f.Legendary == p.Legendary
}

func inRange[T constraints.Ordered](v T, lo, hi *T) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}
