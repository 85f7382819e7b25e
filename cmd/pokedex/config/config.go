package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SanteonNL/pokedex/cmd/pokedex/cache"
	"github.com/SanteonNL/pokedex/cmd/pokedex/datasource"
	"github.com/SanteonNL/pokedex/cmd/pokedex/output"
	"github.com/SanteonNL/pokedex/cmd/pokedex/query"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	Addr            string
	PageSize        int
	ShutdownTimeout time.Duration
	Log             output.LogConfig
	Source          datasource.Config
	Cache           cache.Config
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Addr:            ":8080",
		PageSize:        query.DefaultPageSize,
		ShutdownTimeout: 10 * time.Second,
		Log:             output.LogConfig{Level: "debug"},
		Source: datasource.Config{
			Kind:     datasource.KindStatic,
			RetryMax: 3,
			Timeout:  60 * time.Second,
			S3Secure: true,
		},
		Cache: cache.DefaultConfig(),
	}
}

// Load reads envFile into the environment when it exists, then builds the Config.
// Variables already set in the environment win over the file. Malformed values keep
// their default and are returned as warnings.
func Load(envFile string) (Config, []string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	r := &reader{}
	cfg := Default()

	cfg.Addr = r.str("POKEDEX_ADDR", cfg.Addr)
	cfg.PageSize = r.positiveInt("POKEDEX_PAGE_SIZE", cfg.PageSize)
	cfg.ShutdownTimeout = r.duration("POKEDEX_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	cfg.Log.Level = r.str("POKEDEX_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Dir = r.str("POKEDEX_LOG_DIR", cfg.Log.Dir)

	cfg.Source.Kind = datasource.Kind(strings.ToLower(r.str("POKEDEX_SOURCE", string(cfg.Source.Kind))))
	cfg.Source.Path = r.str("POKEDEX_SOURCE_PATH", "")
	cfg.Source.URL = r.str("POKEDEX_SOURCE_URL", "")
	cfg.Source.RetryMax = r.nonNegativeInt("POKEDEX_HTTP_RETRY_MAX", cfg.Source.RetryMax)
	cfg.Source.Timeout = r.duration("POKEDEX_HTTP_TIMEOUT", cfg.Source.Timeout)
	cfg.Source.S3Endpoint = r.str("POKEDEX_S3_ENDPOINT", "")
	cfg.Source.S3AccessKey = r.str("POKEDEX_S3_ACCESS_KEY", "")
	cfg.Source.S3SecretKey = r.str("POKEDEX_S3_SECRET_KEY", "")
	cfg.Source.S3Bucket = r.str("POKEDEX_S3_BUCKET", "")
	cfg.Source.S3Object = r.str("POKEDEX_S3_OBJECT", "")
	cfg.Source.S3Secure = r.boolean("POKEDEX_S3_SECURE", cfg.Source.S3Secure)
	cfg.Source.DatabaseURL = r.str("POKEDEX_DATABASE_URL", "")
	cfg.Source.QueryFile = r.str("POKEDEX_SQL_QUERY_FILE", "")

	cfg.Cache.Enabled = r.boolean("POKEDEX_CACHE_ENABLED", cfg.Cache.Enabled)
	cfg.Cache.DefaultTTL = r.duration("POKEDEX_CACHE_TTL", cfg.Cache.DefaultTTL)
	cfg.Cache.MaxSize = r.nonNegativeInt("POKEDEX_CACHE_MAX_SIZE", cfg.Cache.MaxSize)
	cfg.Cache.CleanupInterval = r.duration("POKEDEX_CACHE_CLEANUP_INTERVAL", cfg.Cache.CleanupInterval)

	return cfg, r.warnings, nil
}

type reader struct {
	warnings []string
}

func (r *reader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) warn(key, value string, def any) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s=%q is invalid, using %v", key, value, def))
}

func (r *reader) positiveInt(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		r.warn(key, v, def)
		return def
	}
	return n
}

func (r *reader) nonNegativeInt(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		r.warn(key, v, def)
		return def
	}
	return n
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		r.warn(key, v, def)
		return def
	}
	return d
}

func (r *reader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.warn(key, v, def)
		return def
	}
	return b
}
