package datasource

import (
	"bytes"
	"testing"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Sample(t *testing.T) {
	entities, err := Decode(sampleCatalog, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, entities, 5)

	var ids []int
	for _, p := range entities {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 4, 7, 25, 144}, ids)

	bulbasaur := entities[0]
	assert.Equal(t, "Bulbasaur", bulbasaur.Name)
	assert.Equal(t, pokemon.TypeGrass, bulbasaur.PrimaryType)
	require.NotNil(t, bulbasaur.SecondaryType)
	assert.Equal(t, pokemon.TypePoison, *bulbasaur.SecondaryType)
	assert.Equal(t, "Overgrow", bulbasaur.Abilities.Primary)
	assert.Nil(t, bulbasaur.Abilities.Secondary)
	require.NotNil(t, bulbasaur.Abilities.Hidden)
	assert.Equal(t, "Chlorophyll", *bulbasaur.Abilities.Hidden)
	assert.Equal(t, 1, bulbasaur.Generation)
	require.NotNil(t, bulbasaur.Location)
	assert.Equal(t, pokemon.Location{Longitude: -97.460829, Latitude: 20.525745}, *bulbasaur.Location)

	assert.Nil(t, entities[1].SecondaryType)
	assert.Equal(t, 190, entities[3].CaptureRate)
	assert.True(t, entities[4].Legendary)
	assert.False(t, entities[0].Legendary)
}

func TestDecode_SkipsUnusableEntries(t *testing.T) {
	doc := `[
		{"pokemon": {"pokemonId": 1, "name": "Bulbasaur", "primary_type": "Grass", "height": 0.7, "weight": 6.9, "capture_rate": 45}},
		{"pokemon": {"pokemonId": 2, "name": "", "primary_type": "Grass", "height": 1, "weight": 13, "capture_rate": 45}},
		{"pokemon": {"pokemonId": 3, "name": "Venusaur", "primary_type": "Plant", "height": 2, "weight": 100, "capture_rate": 45}},
		{"pokemon": {"pokemonId": "four", "name": "Charmander"}},
		{"location": {"type": "Point", "coordinates": [1, 2]}},
		{"pokemon": {"pokemonId": 1, "name": "Bulbasaur again", "primary_type": "Grass", "height": 0.7, "weight": 6.9, "capture_rate": 45}},
		{"pokemon": {"pokemonId": 6, "name": "Charizard", "primary_type": "Fire", "secondary_type": "Dragonfly", "height": 1.7, "weight": 90.5, "capture_rate": 300}},
		{"pokemon": {"pokemonId": 9, "name": "Blastoise", "primary_type": "Water", "secondary_type": "", "height": 1.6, "weight": 85.5, "capture_rate": 45},
		 "location": {"type": "LineString", "coordinates": [1, 2]}},
		{"pokemon": {"pokemonId": 12, "name": "Butterfree", "primary_type": "Bug", "secondary_type": "Psychic-ish", "height": 1.1, "weight": 32, "capture_rate": 45},
		 "location": {"type": "Point", "coordinates": [500, 2]}},
		42
	]`

	entities, err := Decode([]byte(doc), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, entities, 3)

	assert.Equal(t, 1, entities[0].ID)
	assert.Equal(t, "Bulbasaur", entities[0].Name)
	assert.Nil(t, entities[0].Location)

	assert.Equal(t, 9, entities[1].ID)
	assert.Nil(t, entities[1].SecondaryType)
	assert.Nil(t, entities[1].Location)

	assert.Equal(t, 12, entities[2].ID)
	assert.Nil(t, entities[2].SecondaryType)
	assert.Nil(t, entities[2].Location)
}

func TestDecode_NotAnArray(t *testing.T) {
	_, err := Decode([]byte(`{"pokemon": []}`), zerolog.Nop())
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`), zerolog.Nop())
	assert.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	entities, err := Decode([]byte(`[]`), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestDecode_Gzip(t *testing.T) {
	entities, err := Decode(gzipBytes(t, sampleCatalog), zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, entities, 5)

	_, err = Decode([]byte{0x1f, 0x8b, 0x00}, zerolog.Nop())
	assert.Error(t, err)
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecode_GzipExpandingPastLimit(t *testing.T) {
	limitCatalogSize(t, 1024)
	compressed := gzipBytes(t, bytes.Repeat([]byte(" "), 4096))
	require.Less(t, len(compressed), 1024)

	_, err := Decode(compressed, zerolog.Nop())
	assert.ErrorIs(t, err, ErrCatalogTooLarge)
}
