package query

import "github.com/SanteonNL/pokedex/models/pokemon"

// Run filters, sorts and paginates entities according to state.
func Run(entities []pokemon.Pokemon, state State) Result {
	return Page(Sorted(entities, state), state.PageIndex, state.PageSize)
}

// Sorted applies the search term, filters and sort key of state, without paging.
func Sorted(entities []pokemon.Pokemon, state State) []pokemon.Pokemon {
	return ApplySort(ApplyFilters(entities, state.SearchTerm, state.Filters), state.SortKey)
}

// Page builds a Result for one page of an already filtered and sorted list.
func Page(sorted []pokemon.Pokemon, pageIndex, pageSize int) Result {
	items, totalPages := Paginate(sorted, pageIndex, pageSize)
	return Result{
		Items:        items,
		PageIndex:    pageIndex,
		PageSize:     effectivePageSize(pageSize),
		TotalPages:   totalPages,
		TotalMatches: len(sorted),
	}
}

// HasPrevious reports whether a "previous" control should be enabled.
func (r Result) HasPrevious() bool {
	return r.PageIndex > 1
}

// HasNext reports whether a "next" control should be enabled.
func (r Result) HasNext() bool {
	return r.PageIndex < r.TotalPages
}
