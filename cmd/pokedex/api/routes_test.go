package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SanteonNL/pokedex/cmd/pokedex/cache"
	"github.com/SanteonNL/pokedex/cmd/pokedex/catalog"
	"github.com/SanteonNL/pokedex/cmd/pokedex/datasource"
	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Load(ctx context.Context) ([]pokemon.Pokemon, error) {
	return nil, errors.New("boom")
}

func newTestRouter(t *testing.T, src datasource.Source) (http.Handler, *cache.ResultCache) {
	t.Helper()
	log := zerolog.Nop()

	cat := catalog.New(log)
	if src != nil {
		_ = cat.Load(context.Background(), src)
	}

	rc := cache.New(cache.Config{Enabled: true, DefaultTTL: time.Minute, MaxSize: 10}, log)
	t.Cleanup(rc.Stop)

	return NewPokedexRouter(cat, rc, 20, log).SetupRoutes(), rc
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSearch(t *testing.T, rec *httptest.ResponseRecorder) searchResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func names(items []pokemon.Pokemon) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestSearch_Defaults(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	resp := decodeSearch(t, doGet(t, h, "/pokedex"))
	assert.Equal(t, []string{"Bulbasaur", "Charmander", "Squirtle", "Pikachu", "Articuno"}, names(resp.Items))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 5, resp.Total)
	assert.False(t, resp.HasPrevious)
	assert.False(t, resp.HasNext)
	assert.Equal(t, "Number", resp.Sort)
	assert.Empty(t, resp.Issues)
	assert.Empty(t, resp.Links.Previous)
	assert.Empty(t, resp.Links.Next)
}

func TestSearch_Scenarios(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"legendary", "/pokedex?legendary=true", []string{"Articuno"}},
		{"search", "/pokedex?search=CHAR", []string{"Charmander"}},
		{"capture rate sorted", "/pokedex?minCaptureRate=100&sort=Capture%20Rate", []string{"Pikachu"}},
		{"primary type", "/pokedex?primaryType=water", []string{"Squirtle"}},
		{"sort by name", "/pokedex?sort=Name", []string{"Articuno", "Bulbasaur", "Charmander", "Pikachu", "Squirtle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeSearch(t, doGet(t, h, tt.target))
			assert.Equal(t, tt.want, names(resp.Items))
		})
	}
}

func TestSearch_PagingAndLinks(t *testing.T) {
	h, rc := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	resp := decodeSearch(t, doGet(t, h, "/pokedex?pageSize=2&page=2"))
	assert.Equal(t, []string{"Squirtle", "Pikachu"}, names(resp.Items))
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasPrevious)
	assert.True(t, resp.HasNext)
	assert.Contains(t, resp.Links.Self, "page=2")
	assert.Contains(t, resp.Links.Previous, "page=1")
	assert.Contains(t, resp.Links.Next, "page=3")
	assert.Contains(t, resp.Links.Last, "page=3")
	assert.Contains(t, resp.Links.First, "pageSize=2")

	resp = decodeSearch(t, doGet(t, h, "/pokedex?pageSize=2&page=3"))
	assert.Equal(t, []string{"Articuno"}, names(resp.Items))
	assert.False(t, resp.HasNext)
	assert.Empty(t, resp.Links.Next)

	// Both pages came from one cached result set.
	assert.Equal(t, 1, rc.Len())
}

func TestSearch_PageOutOfRange(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	resp := decodeSearch(t, doGet(t, h, "/pokedex?page=9"))
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items)
	assert.Equal(t, 9, resp.Page)
	assert.Equal(t, 1, resp.TotalPages)
	assert.False(t, resp.HasNext)
}

func TestSearch_MalformedInputBecomesIssues(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	resp := decodeSearch(t, doGet(t, h, "/pokedex?minHeight=abc&page=zero&pageSize=-1&sort=colour"))
	assert.Len(t, resp.Items, 5)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, "Number", resp.Sort)

	fields := make([]string, 0, len(resp.Issues))
	for _, issue := range resp.Issues {
		fields = append(fields, issue.Field)
	}
	assert.ElementsMatch(t, []string{"minHeight", "page", "pageSize", "sort"}, fields)
}

func TestSearch_CatalogNotLoaded(t *testing.T) {
	h, rc := newTestRouter(t, nil)

	resp := decodeSearch(t, doGet(t, h, "/pokedex"))
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "catalog is not loaded", resp.Issues[0].Message)
	assert.Equal(t, 0, rc.Len())
}

func TestGetPokemon(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	rec := doGet(t, h, "/pokedex/25")
	require.Equal(t, http.StatusOK, rec.Code)
	var p pokemon.Pokemon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Pikachu", p.Name)
	assert.Equal(t, pokemon.TypeElectric, p.PrimaryType)

	rec = doGet(t, h, "/pokedex/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")

	rec = doGet(t, h, "/pokedex/pikachu")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestTypesAndSortOptions(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	var types []string
	rec := doGet(t, h, "/types")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	require.Len(t, types, 18)
	assert.Equal(t, "Normal", types[0])
	assert.Equal(t, "Fairy", types[17])

	var options []sortOption
	rec = doGet(t, h, "/sort-options")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	require.Len(t, options, 9)
	assert.Equal(t, sortOption{Key: "Number", Label: "No."}, options[0])
	assert.Equal(t, sortOption{Key: "HP", Label: "HP", Descending: true}, options[2])
	assert.Equal(t, sortOption{Key: "CaptureRate", Label: "Capture Rate"}, options[8])
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		src    datasource.Source
		status string
		loaded bool
		count  int
	}{
		{"loaded", datasource.NewStaticSource(zerolog.Nop()), "ok", true, 5},
		{"failed load", failingSource{}, "degraded", false, 0},
		{"still loading", nil, "loading", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t, tt.src)
			rec := doGet(t, h, "/healthz")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.loaded, resp.Loaded)
			assert.Equal(t, tt.count, resp.Count)
		})
	}
}

func TestUnknownPathRedirects(t *testing.T) {
	h, _ := newTestRouter(t, datasource.NewStaticSource(zerolog.Nop()))

	rec := doGet(t, h, "/somewhere/else")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/pokedex", rec.Header().Get("Location"))
}

func TestRecovererReturnsJSONError(t *testing.T) {
	pr := NewPokedexRouter(catalog.New(zerolog.Nop()), nil, 0, zerolog.Nop())
	h := pr.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := doGet(t, h, "/pokedex")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestUnmatchedRequestsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	cat := catalog.New(log)
	h := NewPokedexRouter(cat, nil, 20, log).SetupRoutes()

	rec := doGet(t, h, "/somewhere/else")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, logs.String(), `"path":"/somewhere/else"`)
	assert.Contains(t, logs.String(), `"status":302`)

	logs.Reset()
	req := httptest.NewRequest(http.MethodPost, "/pokedex", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "method POST not allowed")
	assert.Contains(t, logs.String(), `"status":405`)
}
