package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/SanteonNL/pokedex/util"
	"github.com/rs/zerolog"
)

// FileSource reads the catalog from a local JSON (or gzipped JSON) file.
type FileSource struct {
	path string
	log  zerolog.Logger
}

func NewFileSource(path string, log zerolog.Logger) *FileSource {
	return &FileSource{path: path, log: log}
}

func (s *FileSource) Load(ctx context.Context) ([]pokemon.Pokemon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := util.GetAbsolutePath(s.path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	defer f.Close()

	data, err := readCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	s.log.Debug().
		Str("file", path).
		Int("bytes", len(data)).
		Msg("Read catalog file")

	return Decode(data, s.log)
}
