package query

import "strings"

// SortKey selects the ordering of the filtered list.
type SortKey int

const (
	SortNumber SortKey = iota
	SortName
	SortHP
	SortAttack
	SortDefense
	SortSpeed
	SortHeight
	SortWeight
	SortCaptureRate
)

var sortKeyNames = [...]string{
	SortNumber:      "Number",
	SortName:        "Name",
	SortHP:          "HP",
	SortAttack:      "Attack",
	SortDefense:     "Defense",
	SortSpeed:       "Speed",
	SortHeight:      "Height",
	SortWeight:      "Weight",
	SortCaptureRate: "CaptureRate",
}

var sortKeyLabels = [...]string{
	SortNumber:      "No.",
	SortName:        "Name",
	SortHP:          "HP",
	SortAttack:      "Attack",
	SortDefense:     "Defense",
	SortSpeed:       "Speed",
	SortHeight:      "Height",
	SortWeight:      "Weight",
	SortCaptureRate: "Capture Rate",
}

// SortKeys returns all keys in the order the sort dropdown lists them.
func SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(sortKeyNames))
	for k := range sortKeyNames {
		keys = append(keys, SortKey(k))
	}
	return keys
}

func (k SortKey) valid() bool {
	return k >= SortNumber && k <= SortCaptureRate
}

// String returns the key name; unknown keys report as Number, which is how they sort.
func (k SortKey) String() string {
	if !k.valid() {
		return sortKeyNames[SortNumber]
	}
	return sortKeyNames[k]
}

// Label is the English dropdown text.
func (k SortKey) Label() string {
	if !k.valid() {
		return sortKeyLabels[SortNumber]
	}
	return sortKeyLabels[k]
}

// Descending reports whether larger values come first.
func (k SortKey) Descending() bool {
	switch k {
	case SortHP, SortAttack, SortDefense, SortSpeed, SortHeight, SortWeight:
		return true
	default:
		return false
	}
}

// ParseSortKey accepts key names and dropdown labels, case-insensitively.
// Anything unrecognised sorts by number.
func ParseSortKey(s string) SortKey {
	s = strings.TrimSpace(s)
	for k := range sortKeyNames {
		if strings.EqualFold(s, sortKeyNames[k]) || strings.EqualFold(s, sortKeyLabels[k]) {
			return SortKey(k)
		}
	}
	return SortNumber
}
