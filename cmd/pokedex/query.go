package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SanteonNL/pokedex/cmd/pokedex/catalog"
	"github.com/SanteonNL/pokedex/cmd/pokedex/output"
	"github.com/SanteonNL/pokedex/cmd/pokedex/query"
	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one query against the catalog",
	Long:  "Load the catalog, run a single filter, sort and paginate query and print the page as JSON.",
	RunE:  runQuery,
}

var queryArgs struct {
	search   string
	filters  []string
	sort     string
	page     int
	pageSize int
	out      string
	timeout  time.Duration
}

const catalogNotLoaded = "catalog is not loaded"

type queryOutput struct {
	Items       []pokemon.Pokemon `json:"items"`
	Page        int               `json:"page"`
	PageSize    int               `json:"pageSize"`
	TotalPages  int               `json:"totalPages"`
	Total       int               `json:"total"`
	HasPrevious bool              `json:"hasPrevious"`
	HasNext     bool              `json:"hasNext"`
	Sort        string            `json:"sort"`
	Issues      []query.Issue     `json:"issues,omitempty"`
}

func runQuery(cmd *cobra.Command, argv []string) error {
	// Logs go to stderr so stdout carries only the JSON result.
	a, err := setup(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	state, issues, err := buildState(
		queryArgs.search, queryArgs.filters, queryArgs.sort,
		queryArgs.page, queryArgs.pageSize, a.cfg.PageSize,
	)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		a.log.Warn().Str("field", issue.Field).Str("value", issue.Value).Msg(issue.Message)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), queryArgs.timeout)
	defer cancel()
	if err := a.catalog.Load(ctx, a.source); err != nil {
		// The catalog has logged the failure and stays empty; only an interrupted run
		// is reported as an error.
		if errors.Is(err, catalog.ErrAlreadyLoaded) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}
	if !a.catalog.Loaded() {
		issues = append(issues, query.Issue{Message: catalogNotLoaded})
	}

	result := query.Run(a.catalog.Entities(), state)
	out := queryOutput{
		Items:       result.Items,
		Page:        result.PageIndex,
		PageSize:    result.PageSize,
		TotalPages:  result.TotalPages,
		Total:       result.TotalMatches,
		HasPrevious: result.HasPrevious(),
		HasNext:     result.HasNext(),
		Sort:        state.SortKey.String(),
		Issues:      issues,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if queryArgs.out != "" {
		manager, err := output.NewManager(queryArgs.out, a.log)
		if err != nil {
			return err
		}
		path, err := manager.WriteToJSON(out, "pokedex_query")
		if err != nil {
			return err
		}
		a.log.Info().Str("path", path).Msg("Query result written")
	}
	return nil
}

// buildState turns command line values into a State. Filters are given as key=value;
// an unknown key or a missing '=' is an error, an unparseable value is an issue.
func buildState(search string, filters []string, sort string, page, pageSize, defaultPageSize int) (query.State, []query.Issue, error) {
	raw, err := parseFilterFlags(filters)
	if err != nil {
		return query.State{}, nil, err
	}
	f, issues := query.ParseFilters(raw)

	state := query.NewState()
	state.PageSize = defaultPageSize
	state.SetFilters(f)
	state.SetSearchTerm(search)
	if sort != "" {
		key, issue := query.ParseSort(sort)
		if issue != nil {
			issues = append(issues, *issue)
		}
		state.SetSortKey(key)
	}
	state.GoToPage(page)
	if pageSize > 0 {
		state.PageSize = pageSize
	}
	if err := state.Validate(); err != nil {
		issues = append(issues, query.Issue{Message: err.Error()})
	}
	return state, issues, nil
}

func parseFilterFlags(filters []string) (map[string]string, error) {
	raw := make(map[string]string, len(filters))
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", f)
		}
		key = strings.TrimSpace(key)
		if !slices.Contains(query.FilterFields, key) {
			return nil, fmt.Errorf("unknown filter %q, expected one of %s", key, strings.Join(query.FilterFields, ", "))
		}
		raw[key] = value
	}
	return raw, nil
}

func init() {
	flags := queryCmd.Flags()

	flags.StringVar(
		&queryArgs.search,
		"search",
		"",
		"Case-insensitive name substring",
	)
	flags.StringArrayVar(
		&queryArgs.filters,
		"filter",
		nil,
		"Filter as key=value, repeatable (keys: "+strings.Join(query.FilterFields, ", ")+")",
	)
	flags.StringVar(
		&queryArgs.sort,
		"sort",
		"",
		"Sort key or label (Number, Name, HP, Attack, Defense, Speed, Height, Weight, CaptureRate)",
	)
	flags.IntVar(
		&queryArgs.page,
		"page",
		1,
		"1-based page number",
	)
	flags.IntVar(
		&queryArgs.pageSize,
		"page-size",
		0,
		"Entries per page, defaults to POKEDEX_PAGE_SIZE",
	)
	flags.StringVar(
		&queryArgs.out,
		"out",
		"",
		"Directory to also write the result to",
	)
	flags.DurationVar(
		&queryArgs.timeout,
		"timeout",
		2*time.Minute,
		"Maximum time to wait for the catalog to load",
	)
}
