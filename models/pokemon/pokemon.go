package pokemon

import (
	"errors"
	"fmt"
)

const MaxCaptureRate = 255

// Pokemon is one catalog entry. Values are treated as immutable once loaded.
type Pokemon struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Stats         Stats     `json:"stats"`
	PrimaryType   Type      `json:"primaryType"`
	SecondaryType *Type     `json:"secondaryType,omitempty"`
	Abilities     Abilities `json:"abilities"`
	Generation    int       `json:"generation,omitempty"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"weight"`
	CaptureRate   int       `json:"captureRate"`
	Legendary     bool      `json:"legendary"`
	Location      *Location `json:"location,omitempty"`
}

type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

type Abilities struct {
	Primary   string  `json:"primary,omitempty"`
	Secondary *string `json:"secondary,omitempty"`
	Hidden    *string `json:"hidden,omitempty"`
}

// Location is a WGS84 point where the Pokemon can be found.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// HasSecondaryType reports whether p has dual typing equal to t.
func (p Pokemon) HasSecondaryType(t Type) bool {
	return p.SecondaryType != nil && *p.SecondaryType == t
}

// Validate returns the first invariant p violates, or nil.
func (p Pokemon) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("invalid id %d: must be positive", p.ID)
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if !p.PrimaryType.Valid() {
		return fmt.Errorf("%s: invalid primary type %d", p.Name, int(p.PrimaryType))
	}
	if p.SecondaryType != nil && !p.SecondaryType.Valid() {
		return fmt.Errorf("%s: invalid secondary type %d", p.Name, int(*p.SecondaryType))
	}
	if err := p.Stats.validate(); err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	if p.Height <= 0 {
		return fmt.Errorf("%s: height must be positive, got %v", p.Name, p.Height)
	}
	if p.Weight <= 0 {
		return fmt.Errorf("%s: weight must be positive, got %v", p.Name, p.Weight)
	}
	if p.CaptureRate < 0 || p.CaptureRate > MaxCaptureRate {
		return fmt.Errorf("%s: capture rate %d out of range [0, %d]", p.Name, p.CaptureRate, MaxCaptureRate)
	}
	return nil
}

func (s Stats) validate() error {
	stats := []struct {
		name  string
		value int
	}{
		{"hp", s.HP},
		{"attack", s.Attack},
		{"defense", s.Defense},
		{"special attack", s.SpecialAttack},
		{"special defense", s.SpecialDefense},
		{"speed", s.Speed},
	}
	for _, st := range stats {
		if st.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", st.name, st.value)
		}
	}
	return nil
}
