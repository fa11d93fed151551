package itinerarycache

import (
	"context"
	"sync"
	"time"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/clock"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/itinerarycache"
)

type entry struct {
	it        domain.Itinerary
	expiresAt time.Time
}

// Cache is an in-memory implementation of itinerarycache.Cache with lazy
// per-entry expiry. It is safe for concurrent use.
type Cache struct {
	clk clock.Clock

	mu sync.RWMutex
	m  map[itinerarycache.Key]entry
}

func NewCache(clk clock.Clock) *Cache {
	return &Cache{
		clk: clk,
		m:   make(map[itinerarycache.Key]entry),
	}
}

func (c *Cache) Get(ctx context.Context, key itinerarycache.Key) (domain.Itinerary, bool, error) {
	_ = ctx
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.clk.Now().After(e.expiresAt) {
		// Expired entries read as absent; evict so the map does not grow
		// without bound under key churn.
		c.mu.Lock()
		if cur, ok := c.m[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.it.Clone(), true, nil
}

func (c *Cache) Put(ctx context.Context, key itinerarycache.Key, it domain.Itinerary, ttl time.Duration) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{
		it:        it.Clone(),
		expiresAt: c.clk.Now().Add(ttl),
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
