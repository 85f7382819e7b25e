package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/exp/constraints"
)

// NewState returns the initial selection: no search, no filters, sorted by number,
// first page of DefaultPageSize entries.
func NewState() State {
	return State{
		SortKey:   SortNumber,
		PageIndex: 1,
		PageSize:  DefaultPageSize,
	}
}

// SetSearchTerm changes the search term and returns to the first page.
func (s *State) SetSearchTerm(term string) {
	s.SearchTerm = term
	s.PageIndex = 1
}

// SetFilters replaces the filters and returns to the first page.
func (s *State) SetFilters(f Filters) {
	s.Filters = f
	s.PageIndex = 1
}

// SetSortKey changes the ordering. The current page is kept.
func (s *State) SetSortKey(k SortKey) {
	s.SortKey = k
}

// GoToPage sets the page as given; Paginate yields an empty page when it is out of range.
func (s *State) GoToPage(pageIndex int) {
	s.PageIndex = pageIndex
}

// NextPage advances one page unless already on or past totalPages.
func (s *State) NextPage(totalPages int) bool {
	if s.PageIndex >= totalPages {
		return false
	}
	s.PageIndex++
	return true
}

// PreviousPage goes back one page unless on the first.
func (s *State) PreviousPage() bool {
	if s.PageIndex <= 1 {
		return false
	}
	s.PageIndex--
	return true
}

// Validate reports paging values the caller should not have produced.
// Run still accepts them.
func (s State) Validate() error {
	var errs []error
	if s.PageIndex < 1 {
		errs = append(errs, fmt.Errorf("page index must be at least 1, got %d", s.PageIndex))
	}
	if s.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", s.PageSize))
	}
	f := s.Filters
	if emptyRange(f.MinHeight, f.MaxHeight) {
		errs = append(errs, fmt.Errorf("height range is empty: %v > %v", *f.MinHeight, *f.MaxHeight))
	}
	if emptyRange(f.MinWeight, f.MaxWeight) {
		errs = append(errs, fmt.Errorf("weight range is empty: %v > %v", *f.MinWeight, *f.MaxWeight))
	}
	if emptyRange(f.MinCaptureRate, f.MaxCaptureRate) {
		errs = append(errs, fmt.Errorf("capture rate range is empty: %d > %d", *f.MinCaptureRate, *f.MaxCaptureRate))
	}
	return errors.Join(errs...)
}

func emptyRange[T constraints.Ordered](lo, hi *T) bool {
	return lo != nil && hi != nil && *lo > *hi
}

// Key identifies the filtered and sorted list the state selects, independent of paging.
func (s State) Key() string {
	return s.listValues().Encode()
}

// Values encodes the full state, paging included, as URL query values.
func (s State) Values() url.Values {
	v := s.listValues()
	v.Set("page", strconv.Itoa(s.PageIndex))
	v.Set("pageSize", strconv.Itoa(s.PageSize))
	return v
}

func (s State) listValues() url.Values {
	v := s.Filters.Values()
	if s.SearchTerm != "" {
		v.Set("search", s.SearchTerm)
	}
	v.Set(FieldSort, s.SortKey.String())
	return v
}
