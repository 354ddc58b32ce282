package importer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// statsCache holds the last row counts for a TTL.
// Concurrent misses share one count query. A load that overlaps an
// invalidation is returned to its callers but not kept.
type statsCache struct {
	mu         sync.RWMutex
	counts     *Counts
	built      time.Time
	generation uint64
	ttl        time.Duration
	sf         singleflight.Group
	now        func() time.Time
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{ttl: ttl, now: time.Now}
}

func (c *statsCache) fresh() (*Counts, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.counts == nil || c.ttl <= 0 || c.now().Sub(c.built) > c.ttl {
		return nil, false
	}
	return c.counts, true
}

// get returns cached counts or loads them with load.
func (c *statsCache) get(ctx context.Context, load func(context.Context) (*Counts, error)) (*Counts, error) {
	if counts, ok := c.fresh(); ok {
		return counts, nil
	}

	result, err, _ := c.sf.Do("counts", func() (any, error) {
		if counts, ok := c.fresh(); ok {
			return counts, nil
		}

		c.mu.RLock()
		generation := c.generation
		c.mu.RUnlock()

		counts, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation == generation {
			c.counts = counts
			c.built = c.now()
		}
		c.mu.Unlock()
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	counts := *result.(*Counts)
	return &counts, nil
}

// invalidate drops the cached counts.
func (c *statsCache) invalidate() {
	c.mu.Lock()
	c.counts = nil
	c.generation++
	c.mu.Unlock()
}
