package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// DefaultQuery reads the catalog from the pokemon table. Custom queries must return
// the same column names.
const DefaultQuery = `SELECT pokemon_id, name, hp, attack, defense, special_attack, special_defense, speed,
       primary_type, secondary_type, ability1, ability2, hidden_ability, generation,
       height, weight, capture_rate, legendary, longitude, latitude
FROM pokemon
ORDER BY pokemon_id`

// SQLSource reads the catalog from Postgres.
type SQLSource struct {
	db    *sqlx.DB
	query string
	log   zerolog.Logger
}

func NewSQLSource(db *sqlx.DB, query string, log zerolog.Logger) *SQLSource {
	if query == "" {
		query = DefaultQuery
	}
	return &SQLSource{
		db:    db,
		query: query,
		log:   log,
	}
}

// OpenSQLSource connects to databaseURL. When queryFile is set its contents replace
// DefaultQuery.
func OpenSQLSource(ctx context.Context, databaseURL, queryFile string, log zerolog.Logger) (*SQLSource, error) {
	query := DefaultQuery
	if queryFile != "" {
		q, err := readQueryFile(queryFile)
		if err != nil {
			return nil, err
		}
		query = q
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return NewSQLSource(db, query, log), nil
}

func (s *SQLSource) Load(ctx context.Context) ([]pokemon.Pokemon, error) {
	var rows []pokemonRecord
	if err := s.db.SelectContext(ctx, &rows, s.query); err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	entities := recordsToPokemon(rows, s.log)
	s.log.Debug().
		Int("rows", len(rows)).
		Int("loaded", len(entities)).
		Msg("Read catalog from database")

	return entities, nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func recordsToPokemon(rows []pokemonRecord, log zerolog.Logger) []pokemon.Pokemon {
	entities := make([]pokemon.Pokemon, 0, len(rows))
	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		p, err := row.toPokemon(log)
		if err != nil {
			log.Warn().Err(err).Int("pokemon_id", row.PokemonID).Msg("Skipping invalid row")
			continue
		}
		if seen[p.ID] {
			log.Warn().Int("pokemon_id", p.ID).Msg("Skipping duplicate row")
			continue
		}
		seen[p.ID] = true
		entities = append(entities, p)
	}
	return entities
}

func readQueryFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read query file %s: %w", path, err)
	}
	return string(data), nil
}
