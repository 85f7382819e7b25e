// types.go
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/SanteonNL/pokedex/models/pokemon"
)

// ErrUnsupportedSource is returned by New for an unknown Kind.
var ErrUnsupportedSource = errors.New("unsupported data source")

// ErrCatalogTooLarge is returned when a catalog document exceeds maxCatalogBytes.
var ErrCatalogTooLarge = errors.New("catalog document too large")

// maxCatalogBytes caps a catalog document, measured after decompression. The full
// national dex is well under 1 MiB as JSON.
var maxCatalogBytes int64 = 64 << 20

// readCatalog reads r up to maxCatalogBytes.
func readCatalog(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxCatalogBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxCatalogBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrCatalogTooLarge, maxCatalogBytes)
	}
	return data, nil
}

// Source supplies the catalog once at startup.
type Source interface {
	Load(ctx context.Context) ([]pokemon.Pokemon, error)
}

type Kind string

const (
	KindStatic   Kind = "static"
	KindFile     Kind = "file"
	KindHTTP     Kind = "http"
	KindObject   Kind = "object"
	KindPostgres Kind = "postgres"
)

// Config selects and parameterises a Source.
type Config struct {
	Kind Kind

	// file
	Path string

	// http
	URL      string
	RetryMax int
	Timeout  time.Duration

	// object storage
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Object    string
	S3Secure    bool

	// postgres
	DatabaseURL string
	QueryFile   string
}

// pokemonRecord is the catalog record as it appears in JSON documents and database rows.
type pokemonRecord struct {
	PokemonID      int      `json:"pokemonId" db:"pokemon_id"`
	Name           string   `json:"name" db:"name"`
	HP             int      `json:"hp" db:"hp"`
	Attack         int      `json:"attack" db:"attack"`
	Defense        int      `json:"defense" db:"defense"`
	SpecialAttack  int      `json:"special_attack" db:"special_attack"`
	SpecialDefense int      `json:"special_defense" db:"special_defense"`
	Speed          int      `json:"speed" db:"speed"`
	PrimaryType    string   `json:"primary_type" db:"primary_type"`
	SecondaryType  *string  `json:"secondary_type" db:"secondary_type"`
	Ability1       *string  `json:"ability1" db:"ability1"`
	Ability2       *string  `json:"ability2" db:"ability2"`
	HiddenAbility  *string  `json:"hidden_ability" db:"hidden_ability"`
	Generation     *int     `json:"generation" db:"generation"`
	Height         float64  `json:"height" db:"height"`
	Weight         float64  `json:"weight" db:"weight"`
	CaptureRate    int      `json:"capture_rate" db:"capture_rate"`
	Legendary      bool     `json:"legendary" db:"legendary"`
	Longitude      *float64 `json:"-" db:"longitude"`
	Latitude       *float64 `json:"-" db:"latitude"`
}

// catalogEntry wraps a record with its GeoJSON location.
type catalogEntry struct {
	Pokemon  *pokemonRecord `json:"pokemon"`
	Location *geoPoint      `json:"location"`
}

type geoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}
