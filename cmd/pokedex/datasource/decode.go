package datasource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// Decode parses a catalog document: a JSON array of {"pokemon": {...}, "location": {...}}
// entries, optionally gzip-compressed. Entries that cannot be used are skipped and logged;
// only a document that is not a JSON array is an error.
func Decode(data []byte, log zerolog.Logger) ([]pokemon.Pokemon, error) {
	data, err := maybeGunzip(data)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	entities := make([]pokemon.Pokemon, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for i, msg := range raw {
		var entry catalogEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping malformed catalog entry")
			continue
		}
		if entry.Pokemon == nil {
			log.Warn().Int("index", i).Msg("Skipping catalog entry without pokemon")
			continue
		}

		p, err := entry.Pokemon.toPokemon(log)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping invalid pokemon")
			continue
		}
		if seen[p.ID] {
			log.Warn().Int("index", i).Int("id", p.ID).Msg("Skipping duplicate pokemon id")
			continue
		}
		seen[p.ID] = true
		p.Location = entry.Location.toLocation()
		entities = append(entities, p)
	}

	log.Debug().
		Int("entries", len(raw)).
		Int("loaded", len(entities)).
		Msg("Decoded catalog")

	return entities, nil
}

func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := readCatalog(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress catalog: %w", err)
	}
	return out, nil
}

func (r pokemonRecord) toPokemon(log zerolog.Logger) (pokemon.Pokemon, error) {
	primary, err := pokemon.ParseType(r.PrimaryType)
	if err != nil {
		return pokemon.Pokemon{}, fmt.Errorf("%s: %w", r.Name, err)
	}

	p := pokemon.Pokemon{
		ID:   r.PokemonID,
		Name: strings.TrimSpace(r.Name),
		Stats: pokemon.Stats{
			HP:             r.HP,
			Attack:         r.Attack,
			Defense:        r.Defense,
			SpecialAttack:  r.SpecialAttack,
			SpecialDefense: r.SpecialDefense,
			Speed:          r.Speed,
		},
		PrimaryType: primary,
		Abilities: pokemon.Abilities{
			Secondary: nonEmpty(r.Ability2),
			Hidden:    nonEmpty(r.HiddenAbility),
		},
		Height:      r.Height,
		Weight:      r.Weight,
		CaptureRate: r.CaptureRate,
		Legendary:   r.Legendary,
	}
	if a := nonEmpty(r.Ability1); a != nil {
		p.Abilities.Primary = *a
	}
	if r.Generation != nil {
		p.Generation = *r.Generation
	}

	// An unknown secondary type is treated as no secondary type.
	if s := nonEmpty(r.SecondaryType); s != nil {
		secondary, err := pokemon.ParseType(*s)
		if err != nil {
			log.Warn().Err(err).Str("name", p.Name).Msg("Ignoring unknown secondary type")
		} else {
			p.SecondaryType = &secondary
		}
	}

	if r.Longitude != nil && r.Latitude != nil {
		p.Location = newLocation(*r.Longitude, *r.Latitude)
	}

	if err := p.Validate(); err != nil {
		return pokemon.Pokemon{}, err
	}
	return p, nil
}

func (g *geoPoint) toLocation() *pokemon.Location {
	if g == nil || !strings.EqualFold(g.Type, "Point") || len(g.Coordinates) < 2 {
		return nil
	}
	// GeoJSON orders coordinates as longitude, latitude.
	return newLocation(g.Coordinates[0], g.Coordinates[1])
}

func newLocation(lon, lat float64) *pokemon.Location {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil
	}
	return &pokemon.Location{Longitude: lon, Latitude: lat}
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
