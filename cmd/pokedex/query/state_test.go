package query

import (
	"testing"

	"github.com/SanteonNL/pokedex/util"
	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, "", s.SearchTerm)
	assert.True(t, s.Filters.IsZero())
	assert.Equal(t, SortNumber, s.SortKey)
	assert.Equal(t, 1, s.PageIndex)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.NoError(t, s.Validate())
}

func TestState_PageResetRules(t *testing.T) {
	s := NewState()

	s.GoToPage(3)
	s.SetSearchTerm("bulba")
	assert.Equal(t, 1, s.PageIndex)

	s.GoToPage(3)
	s.SetFilters(Filters{Legendary: util.BoolPtr(true)})
	assert.Equal(t, 1, s.PageIndex)

	s.GoToPage(3)
	s.SetSortKey(SortSpeed)
	assert.Equal(t, 3, s.PageIndex)
	assert.Equal(t, SortSpeed, s.SortKey)
}

func TestState_Navigation(t *testing.T) {
	s := NewState()
	assert.False(t, s.PreviousPage())
	assert.Equal(t, 1, s.PageIndex)

	assert.True(t, s.NextPage(2))
	assert.Equal(t, 2, s.PageIndex)
	assert.False(t, s.NextPage(2))
	assert.Equal(t, 2, s.PageIndex)

	assert.True(t, s.PreviousPage())
	assert.Equal(t, 1, s.PageIndex)

	assert.False(t, s.NextPage(1))
}

func TestState_Validate(t *testing.T) {
	s := NewState()
	s.PageIndex = 0
	s.PageSize = -1
	s.Filters = Filters{
		MinHeight:      util.Float64Ptr(2),
		MaxHeight:      util.Float64Ptr(1),
		MinCaptureRate: util.IntPtr(10),
		MaxCaptureRate: util.IntPtr(10),
	}

	err := s.Validate()
	assert.ErrorContains(t, err, "page index")
	assert.ErrorContains(t, err, "page size")
	assert.ErrorContains(t, err, "height range")
	assert.NotContains(t, err.Error(), "capture rate")
}

func TestState_KeyIgnoresPaging(t *testing.T) {
	a := NewState()
	a.SetSearchTerm("pika")
	a.SetSortKey(SortHP)

	b := a
	b.GoToPage(4)
	b.PageSize = 5
	assert.Equal(t, a.Key(), b.Key())

	b.SetSortKey(SortName)
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "search=pika&sort=HP", a.Key())
}

func TestState_Values(t *testing.T) {
	s := NewState()
	s.SetFilters(Filters{Legendary: util.BoolPtr(false)})
	s.GoToPage(2)

	v := s.Values()
	assert.Equal(t, "false", v.Get("legendary"))
	assert.Equal(t, "Number", v.Get("sort"))
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("pageSize"))
}

func TestState_ValuesKeepsReservedCharacters(t *testing.T) {
	s := NewState()
	s.SetSearchTerm("mr. mime & co=1%")
	s.SetFilters(Filters{MinHeight: util.Float64Ptr(0.5)})

	v := s.Values()
	assert.Equal(t, "mr. mime & co=1%", v.Get("search"))
	assert.Equal(t, "0.5", v.Get(FieldMinHeight))
	assert.Equal(t, "1", v.Get("page"))

	v.Del("page")
	v.Del("pageSize")
	assert.Equal(t, s.Key(), v.Encode())
}
