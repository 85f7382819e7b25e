package query

import (
	"github.com/SanteonNL/pokedex/models/pokemon"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ApplySort returns a stably sorted copy of list. Entries with equal keys keep their
// relative order.
func ApplySort(list []pokemon.Pokemon, key SortKey) []pokemon.Pokemon {
	sorted := slices.Clone(list)
	if sorted == nil {
		sorted = []pokemon.Pokemon{}
	}
	slices.SortStableFunc(sorted, comparator(key))
	return sorted
}

func comparator(key SortKey) func(a, b pokemon.Pokemon) int {
	switch key {
	case SortNumber:
		return func(a, b pokemon.Pokemon) int { return compare(a.ID, b.ID) }
	case SortName:
		// Collator keeps scratch buffers, so each sort gets its own.
		c := collate.New(language.English)
		return func(a, b pokemon.Pokemon) int { return c.CompareString(a.Name, b.Name) }
	case SortHP:
		return func(a, b pokemon.Pokemon) int { return compare(b.Stats.HP, a.Stats.HP) }
	case SortAttack:
		return func(a, b pokemon.Pokemon) int { return compare(b.Stats.Attack, a.Stats.Attack) }
	case SortDefense:
		return func(a, b pokemon.Pokemon) int { return compare(b.Stats.Defense, a.Stats.Defense) }
	case SortSpeed:
		return func(a, b pokemon.Pokemon) int { return compare(b.Stats.Speed, a.Stats.Speed) }
	case SortHeight:
		return func(a, b pokemon.Pokemon) int { return compare(b.Height, a.Height) }
	case SortWeight:
		return func(a, b pokemon.Pokemon) int { return compare(b.Weight, a.Weight) }
	case SortCaptureRate:
		return func(a, b pokemon.Pokemon) int { return compare(a.CaptureRate, b.CaptureRate) }
	default:
		return comparator(SortNumber)
	}
}

func compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
