package memory

import (
	"sync"
	"time"

	"agency-configurator-be/internal/entity"
	"agency-configurator-be/pkg/clock"

	"github.com/patrickmn/go-cache"
)

const allOptionsKey = "options:all"

type cachedOptions struct {
	options   []*entity.Option
	fetchedAt time.Time
}

// OptionCache holds the unfiltered active catalog. Expiry is computed from
// the injected clock, go-cache is only the storage.
type OptionCache struct {
	mu    sync.Mutex
	cache *cache.Cache
	clock clock.Clock
	ttl   time.Duration
	// generation moves on every Invalidate.
	generation uint64
}

func NewOptionCache(clk clock.Clock, ttl time.Duration) *OptionCache {
	return &OptionCache{
		cache: cache.New(cache.NoExpiration, 0),
		clock: clk,
		ttl:   ttl,
	}
}

// Get returns a copy of the cached slice, or false when absent or stale.
func (c *OptionCache) Get() ([]*entity.Option, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	x, found := c.cache.Get(allOptionsKey)
	if !found {
		return nil, false
	}
	entry := x.(*cachedOptions)
	if c.clock.Now().Sub(entry.fetchedAt) >= c.ttl {
		c.cache.Delete(allOptionsKey)
		return nil, false
	}

	out := make([]*entity.Option, len(entry.options))
	copy(out, entry.options)
	return out, true
}

// Generation is taken before loading from the store and handed back to Set.
func (c *OptionCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Set stores options loaded at generation. A load that raced with an
// Invalidate is dropped and reports false.
func (c *OptionCache) Set(generation uint64, options []*entity.Option) bool {
	if c.ttl <= 0 {
		return false
	}
	stored := make([]*entity.Option, len(options))
	copy(stored, options)

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.cache.Set(allOptionsKey, &cachedOptions{options: stored, fetchedAt: c.clock.Now()}, cache.NoExpiration)
	return true
}

func (c *OptionCache) Invalidate() {
	c.mu.Lock()
	c.generation++
	c.cache.Delete(allOptionsKey)
	c.mu.Unlock()
}
