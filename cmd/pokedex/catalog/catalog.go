package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SanteonNL/pokedex/cmd/pokedex/datasource"
	"github.com/SanteonNL/pokedex/models/pokemon"
	"github.com/rs/zerolog"
)

var ErrAlreadyLoaded = errors.New("catalog already loaded")

// Catalog holds the entity collection. It is filled once and never changes afterwards;
// until then it is empty.
type Catalog struct {
	snapshot atomic.Pointer[snapshot]
	started  atomic.Bool
	ready    chan struct{}
	done     sync.Once
	log      zerolog.Logger
}

type snapshot struct {
	entities   []pokemon.Pokemon
	byID       map[int]int
	generation uint64
}

func New(log zerolog.Logger) *Catalog {
	c := &Catalog{
		ready: make(chan struct{}),
		log:   log.With().Str("component", "catalog").Logger(),
	}
	c.snapshot.Store(&snapshot{})
	return c
}

// Load reads src and publishes the result. On failure the error is logged, the catalog
// stays empty and Ready is still closed. Only the first call loads.
func (c *Catalog) Load(ctx context.Context, src datasource.Source) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyLoaded
	}
	defer c.done.Do(func() { close(c.ready) })

	start := time.Now()
	entities, err := src.Load(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to load catalog, continuing with an empty collection")
		return err
	}

	byID := make(map[int]int, len(entities))
	for i, p := range entities {
		byID[p.ID] = i
	}
	c.snapshot.Store(&snapshot{
		entities:   entities,
		byID:       byID,
		generation: 1,
	})

	c.log.Info().
		Int("count", len(entities)).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")
	return nil
}

// LoadAsync starts Load in the background and returns immediately.
func (c *Catalog) LoadAsync(ctx context.Context, src datasource.Source) {
	go func() {
		_ = c.Load(ctx, src)
	}()
}

// Ready is closed once a load attempt has finished, successful or not.
func (c *Catalog) Ready() <-chan struct{} {
	return c.ready
}

// Wait blocks until Ready or ctx is done.
func (c *Catalog) Wait(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entities returns the collection. Callers must not modify it.
func (c *Catalog) Entities() []pokemon.Pokemon {
	s := c.snapshot.Load()
	return s.entities[:len(s.entities):len(s.entities)]
}

// Get looks up an entity by id.
func (c *Catalog) Get(id int) (pokemon.Pokemon, bool) {
	s := c.snapshot.Load()
	i, ok := s.byID[id]
	if !ok {
		return pokemon.Pokemon{}, false
	}
	return s.entities[i], true
}

func (c *Catalog) Len() int {
	return len(c.snapshot.Load().entities)
}

// Loaded reports whether a load has succeeded.
func (c *Catalog) Loaded() bool {
	return c.snapshot.Load().generation > 0
}

// Generation is 0 while the catalog is empty and 1 once loaded. Cached results are keyed
// on it.
func (c *Catalog) Generation() uint64 {
	return c.snapshot.Load().generation
}
