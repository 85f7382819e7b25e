package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SanteonNL/pokedex/cmd/pokedex/cache"
	"github.com/SanteonNL/pokedex/cmd/pokedex/catalog"
	"github.com/SanteonNL/pokedex/cmd/pokedex/query"
	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// PokedexRouter serves the catalog over HTTP.
type PokedexRouter struct {
	catalog         *catalog.Catalog
	resultCache     *cache.ResultCache
	defaultPageSize int
	log             zerolog.Logger
}

func NewPokedexRouter(cat *catalog.Catalog, resultCache *cache.ResultCache, defaultPageSize int, log zerolog.Logger) *PokedexRouter {
	if defaultPageSize < 1 {
		defaultPageSize = query.DefaultPageSize
	}
	return &PokedexRouter{
		catalog:         cat,
		resultCache:     resultCache,
		defaultPageSize: defaultPageSize,
		log:             log.With().Str("component", "api").Logger(),
	}
}

func (pr *PokedexRouter) SetupRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(pr.recoverer)
	r.Use(pr.requestLogger)

	r.HandleFunc("/pokedex", pr.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/pokedex/{id}", pr.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/types", pr.handleTypes).Methods(http.MethodGet)
	r.HandleFunc("/sort-options", pr.handleSortOptions).Methods(http.MethodGet)
	r.HandleFunc("/healthz", pr.handleHealth).Methods(http.MethodGet)

	// mux only applies r.Use middleware to matched routes.
	r.NotFoundHandler = pr.recoverer(pr.requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pokedex", http.StatusFound)
	})))
	r.MethodNotAllowedHandler = pr.recoverer(pr.requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: fmt.Sprintf("method %s not allowed", r.Method)})
	})))

	return r
}

type searchResponse struct {
	Items       []pokemon.Pokemon `json:"items"`
	Page        int               `json:"page"`
	PageSize    int               `json:"pageSize"`
	TotalPages  int               `json:"totalPages"`
	Total       int               `json:"total"`
	HasPrevious bool              `json:"hasPrevious"`
	HasNext     bool              `json:"hasNext"`
	Sort        string            `json:"sort"`
	Issues      []query.Issue     `json:"issues"`
	Links       paginationLinks   `json:"links"`
}

type paginationLinks struct {
	Self     string `json:"self"`
	First    string `json:"first"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
	Last     string `json:"last"`
}

type sortOption struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Descending bool   `json:"descending"`
}

type healthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (pr *PokedexRouter) handleSearch(w http.ResponseWriter, r *http.Request) {
	state, issues := pr.stateFromRequest(r.URL.Query())

	result := pr.runQuery(state)

	if !pr.catalog.Loaded() {
		issues = append(issues, query.Issue{Message: "catalog is not loaded"})
	}

	resp := searchResponse{
		Items:       result.Items,
		Page:        result.PageIndex,
		PageSize:    result.PageSize,
		TotalPages:  result.TotalPages,
		Total:       result.TotalMatches,
		HasPrevious: result.HasPrevious(),
		HasNext:     result.HasNext(),
		Sort:        state.SortKey.String(),
		Issues:      issues,
		Links:       createPaginationLinks(getBaseURL(r), state, result.TotalPages),
	}
	if resp.Items == nil {
		resp.Items = []pokemon.Pokemon{}
	}
	if resp.Issues == nil {
		resp.Issues = []query.Issue{}
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// runQuery serves the page from a cached result set when possible and caches the
// sorted list otherwise.
func (pr *PokedexRouter) runQuery(state query.State) query.Result {
	key := state.Key()
	generation := pr.catalog.Generation()

	if pr.resultCache != nil {
		if result, found := pr.resultCache.GetPage(key, generation, state.PageIndex, state.PageSize); found {
			pr.log.Debug().Str("query", key).Msg("Serving response from cache")
			return result
		}
	}

	sorted := query.Sorted(pr.catalog.Entities(), state)
	if pr.resultCache != nil && pr.catalog.Loaded() {
		pr.resultCache.Store(key, generation, sorted)
	}
	return query.Page(sorted, state.PageIndex, state.PageSize)
}

// stateFromRequest builds a State from query parameters. Values that cannot be used keep
// their default and are reported as issues.
func (pr *PokedexRouter) stateFromRequest(values url.Values) (query.State, []query.Issue) {
	state := query.NewState()
	state.PageSize = pr.defaultPageSize

	filters, issues := query.FiltersFromValues(values)
	state.SetFilters(filters)
	state.SetSearchTerm(values.Get("search"))

	if raw := values.Get(query.FieldSort); raw != "" {
		key, issue := query.ParseSort(raw)
		if issue != nil {
			issues = append(issues, *issue)
		}
		state.SetSortKey(key)
	}

	if n, issue, ok := positiveParam(values, "page"); ok {
		state.GoToPage(n)
	} else if issue != nil {
		issues = append(issues, *issue)
	}
	if n, issue, ok := positiveParam(values, "pageSize"); ok {
		state.PageSize = n
	} else if issue != nil {
		issues = append(issues, *issue)
	}

	return state, issues
}

// positiveParam parses a positive integer parameter. ok is false when the parameter is
// absent or invalid; in the latter case an issue is returned.
func positiveParam(values url.Values, name string) (int, *query.Issue, bool) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &query.Issue{
			Field:   name,
			Value:   raw,
			Message: "must be a positive integer, using the default",
		}, false
	}
	return n, nil, true
}

func (pr *PokedexRouter) handleGet(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid id %q", raw)})
		return
	}

	p, ok := pr.catalog.Get(id)
	if !ok {
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("pokemon %d not found", id)})
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (pr *PokedexRouter) handleTypes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, pokemon.AllTypes())
}

func (pr *PokedexRouter) handleSortOptions(w http.ResponseWriter, r *http.Request) {
	keys := query.SortKeys()
	options := make([]sortOption, 0, len(keys))
	for _, k := range keys {
		options = append(options, sortOption{Key: k.String(), Label: k.Label(), Descending: k.Descending()})
	}
	respondWithJSON(w, http.StatusOK, options)
}

func (pr *PokedexRouter) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "loading",
		Loaded: pr.catalog.Loaded(),
		Count:  pr.catalog.Len(),
	}
	select {
	case <-pr.catalog.Ready():
		resp.Status = "ok"
		if !resp.Loaded {
			resp.Status = "degraded"
		}
	default:
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func createPaginationLinks(baseURL string, state query.State, totalPages int) paginationLinks {
	createLink := func(page int) string {
		v := state.Values()
		v.Set("page", strconv.Itoa(page))
		return fmt.Sprintf("%s?%s", baseURL, v.Encode())
	}

	links := paginationLinks{
		Self:  createLink(state.PageIndex),
		First: createLink(1),
		Last:  createLink(totalPages),
	}
	if state.PageIndex > 1 {
		links.Previous = createLink(state.PageIndex - 1)
	}
	if state.PageIndex < totalPages {
		links.Next = createLink(state.PageIndex + 1)
	}
	return links
}

func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/pokedex", scheme, r.Host)
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
