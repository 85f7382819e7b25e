package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"github.com/SanteonNL/pokedex/cmd/pokedex/query"
	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// ResultCache keeps filtered and sorted result sets so that paging through a query does
// not recompute it.
type ResultCache struct {
	entries  sync.Map // map[string]*ResultSet
	config   Config
	log      zerolog.Logger
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

// ResultSet is one cached, fully sorted query result.
type ResultSet struct {
	Items     []pokemon.Pokemon
	Query     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Config struct {
	// Enabled switches the cache on. When false every lookup misses and nothing is stored.
	Enabled bool

	// DefaultTTL is how long a result set stays valid.
	DefaultTTL time.Duration

	// MaxSize caps the number of result sets; the oldest are evicted first. 0 is unlimited.
	MaxSize int

	// CleanupInterval is how often expired entries are removed and MaxSize is enforced.
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultTTL:      15 * time.Minute,
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
	}
}

func New(config Config, log zerolog.Logger) *ResultCache {
	c := &ResultCache{
		config:   config,
		log:      log.With().Str("component", "result_cache").Logger(),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go c.startCleanupRoutine()
		c.log.Info().
			Dur("interval", config.CleanupInterval).
			Int("max_size", config.MaxSize).
			Dur("ttl", config.DefaultTTL).
			Msg("Started cache cleanup routine")
	}

	return c
}

func (c *ResultCache) startCleanupRoutine() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopChan:
			c.log.Info().Msg("Stopping cache cleanup routine")
			return
		}
	}
}

func (c *ResultCache) cleanup() {
	type keyed struct {
		key       any
		createdAt time.Time
	}

	var (
		now     = c.now()
		live    []keyed
		expired int
		evicted int
	)

	c.entries.Range(func(key, value any) bool {
		rs := value.(*ResultSet)
		if now.After(rs.ExpiresAt) {
			c.entries.Delete(key)
			expired++
		} else {
			live = append(live, keyed{key: key, createdAt: rs.CreatedAt})
		}
		return true
	})

	if c.config.MaxSize > 0 && len(live) > c.config.MaxSize {
		slices.SortFunc(live, func(a, b keyed) int {
			return a.createdAt.Compare(b.createdAt)
		})
		for _, k := range live[:len(live)-c.config.MaxSize] {
			c.entries.Delete(k.key)
			evicted++
		}
	}

	c.log.Debug().
		Int("expired_removed", expired).
		Int("size_limit_removed", evicted).
		Int("remaining_entries", len(live)-evicted).
		Msg("Completed cache cleanup")
}

func (c *ResultCache) cacheKey(queryKey string, generation uint64) string {
	hasher := sha256.New()
	hasher.Write(binary.BigEndian.AppendUint64(nil, generation))
	hasher.Write([]byte(queryKey))
	return hex.EncodeToString(hasher.Sum(nil))
}

// Store caches the sorted result for queryKey against the given catalog generation.
func (c *ResultCache) Store(queryKey string, generation uint64, items []pokemon.Pokemon) {
	if !c.config.Enabled {
		return
	}

	key := c.cacheKey(queryKey, generation)
	now := c.now()
	rs := &ResultSet{
		Items:     items,
		Query:     queryKey,
		CreatedAt: now,
		ExpiresAt: now.Add(c.config.DefaultTTL),
	}
	c.entries.Store(key, rs)

	c.log.Debug().
		Str("key", key).
		Str("query", queryKey).
		Int("total", len(items)).
		Time("expires", rs.ExpiresAt).
		Msg("Stored result set in cache")
}

// Get returns the cached sorted result for queryKey, if present and not expired.
func (c *ResultCache) Get(queryKey string, generation uint64) ([]pokemon.Pokemon, bool) {
	if !c.config.Enabled {
		return nil, false
	}

	key := c.cacheKey(queryKey, generation)
	entry, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	rs := entry.(*ResultSet)
	if c.now().After(rs.ExpiresAt) {
		c.entries.Delete(key)
		return nil, false
	}
	return rs.Items, true
}

// GetPage pages through a cached result set.
func (c *ResultCache) GetPage(queryKey string, generation uint64, pageIndex, pageSize int) (query.Result, bool) {
	items, ok := c.Get(queryKey, generation)
	if !ok {
		return query.Result{}, false
	}

	result := query.Page(items, pageIndex, pageSize)
	c.log.Debug().
		Str("query", queryKey).
		Int("page", pageIndex).
		Int("page_size", result.PageSize).
		Int("returned", len(result.Items)).
		Msg("Retrieved page from cached result set")
	return result, true
}

// Len counts the stored result sets, expired ones included until cleanup runs.
func (c *ResultCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stop ends the cleanup routine and clears the cache. It is safe to call more than once.
func (c *ResultCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})

	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})

	c.log.Info().Msg("Cache cleared and stopped")
}
