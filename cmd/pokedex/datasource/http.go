package datasource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// HTTPSource fetches the catalog document with a GET request.
type HTTPSource struct {
	URL        string
	HTTPClient *http.Client
	log        zerolog.Logger
}

func NewHTTPSource(url string, retryMax int, timeout time.Duration, log zerolog.Logger) *HTTPSource {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.HTTPClient = &http.Client{
		Timeout: timeout,
	}
	retryClient.Logger = retryLogger{log: log.With().Str("component", "http_source").Logger()}

	return &HTTPSource{
		URL:        url,
		HTTPClient: retryClient.StandardClient(),
		log:        log,
	}
}

func (s *HTTPSource) Load(ctx context.Context) ([]pokemon.Pokemon, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog from %s: unexpected status %s", s.URL, resp.Status)
	}

	data, err := readCatalog(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	s.log.Debug().
		Str("url", s.URL).
		Int("bytes", len(data)).
		Msg("Fetched catalog")

	return Decode(data, s.log)
}

// retryLogger routes retryablehttp output through zerolog.
type retryLogger struct {
	log zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}
