package permissions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memEntry struct {
	value     string
	expiresAt time.Time
}

// MemCache is an in-process cache bounded by capacity. Each entry carries its
// own deadline because different entry kinds use different TTLs; the LRU ttl
// is only a janitorial upper bound.
//
// Guild invalidation bumps a per-guild generation that is part of every key,
// orphaning the old entries until the LRU ages them out.
type MemCache struct {
	data *expirable.LRU[string, memEntry]

	mu          sync.Mutex
	generations map[string]uint64
}

var _ Cache = (*MemCache)(nil)

func NewMemCache(capacity int, ttl time.Duration) *MemCache {
	return &MemCache{
		data:        expirable.NewLRU[string, memEntry](capacity, nil, ttl),
		generations: make(map[string]uint64),
	}
}

func (c *MemCache) generation(guildId string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[guildId]
}

func (c *MemCache) cacheKey(guildId string, name string, key string) string {
	return fmt.Sprintf("%s/%d/%s/%s", guildId, c.generation(guildId), name, key)
}

func (c *MemCache) Get(_ context.Context, guildId string, name string, key string) (string, error) {
	entry, ok := c.data.Get(c.cacheKey(guildId, name, key))
	if !ok || time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.value, nil
}

func (c *MemCache) Set(_ context.Context, guildId string, name string, key string, val string, ttl time.Duration) error {
	c.data.Add(c.cacheKey(guildId, name, key), memEntry{
		value:     val,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

func (c *MemCache) InvalidateGuild(_ context.Context, guildId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[guildId]++
	return nil
}
