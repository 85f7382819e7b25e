package query

import "github.com/SanteonNL/pokedex/models/pokemon"

// Paginate returns the entries of the 1-based page pageIndex and the number of pages,
// which is never less than 1. Pages outside [1, totalPages] are empty. A non-positive
// pageSize falls back to DefaultPageSize.
func Paginate(list []pokemon.Pokemon, pageIndex, pageSize int) ([]pokemon.Pokemon, int) {
	pageSize = effectivePageSize(pageSize)
	totalPages := TotalPages(len(list), pageSize)

	if pageIndex < 1 || pageIndex > totalPages {
		return []pokemon.Pokemon{}, totalPages
	}

	start := (pageIndex - 1) * pageSize
	if start >= len(list) {
		return []pokemon.Pokemon{}, totalPages
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}

	// Cap the capacity so appending to a page cannot overwrite the next one.
	return list[start:end:end], totalPages
}

// TotalPages is ceil(n/pageSize), with a floor of 1 so an empty result still has a page.
func TotalPages(n, pageSize int) int {
	pageSize = effectivePageSize(pageSize)
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func effectivePageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	return pageSize
}
