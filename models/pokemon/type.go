package pokemon

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type is the elemental typing of a Pokemon. The zero value is not a valid type.
type Type int

const (
	TypeNormal Type = iota + 1
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
)

var typeNames = [...]string{
	TypeNormal:   "Normal",
	TypeFire:     "Fire",
	TypeWater:    "Water",
	TypeElectric: "Electric",
	TypeGrass:    "Grass",
	TypeIce:      "Ice",
	TypeFighting: "Fighting",
	TypePoison:   "Poison",
	TypeGround:   "Ground",
	TypeFlying:   "Flying",
	TypePsychic:  "Psychic",
	TypeBug:      "Bug",
	TypeRock:     "Rock",
	TypeGhost:    "Ghost",
	TypeDragon:   "Dragon",
	TypeDark:     "Dark",
	TypeSteel:    "Steel",
	TypeFairy:    "Fairy",
}

// AllTypes returns every type in dropdown order.
func AllTypes() []Type {
	types := make([]Type, 0, len(typeNames)-1)
	for t := TypeNormal; t <= TypeFairy; t++ {
		types = append(types, t)
	}
	return types
}

// Valid reports whether t is one of the 18 known types.
func (t Type) Valid() bool {
	return t >= TypeNormal && t <= TypeFairy
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves a type name, ignoring case and surrounding whitespace.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for t := TypeNormal; t <= TypeFairy; t++ {
		if strings.EqualFold(typeNames[t], s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pokemon type %q", s)
}

// MarshalJSON implements the json.Marshaler interface
func (t Type) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid type %d", int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("type must be a string: %w", err)
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
