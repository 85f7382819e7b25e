package datasource

import (
	"context"
	_ "embed"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/rs/zerolog"
)

//go:embed data/sample.json
var sampleCatalog []byte

// StaticSource serves the built-in five entry sample catalog.
type StaticSource struct {
	log zerolog.Logger
}

func NewStaticSource(log zerolog.Logger) *StaticSource {
	return &StaticSource{log: log}
}

func (s *StaticSource) Load(ctx context.Context) ([]pokemon.Pokemon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(sampleCatalog, s.log)
}
