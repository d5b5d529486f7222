package permissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache(16, time.Minute)

	val, err := c.Get(ctx, "guild-1", "actors", "user-1")
	assert.NoError(t, err)
	assert.Empty(t, val)

	assert.NoError(t, c.Set(ctx, "guild-1", "actors", "user-1", "4", time.Minute))

	val, err = c.Get(ctx, "guild-1", "actors", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "4", val)

	// entries are partitioned by guild and name
	val, err = c.Get(ctx, "guild-2", "actors", "user-1")
	assert.NoError(t, err)
	assert.Empty(t, val)

	val, err = c.Get(ctx, "guild-1", "assignments", "user-1")
	assert.NoError(t, err)
	assert.Empty(t, val)
}

func TestMemCache_EntryTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache(16, time.Minute)

	// an entry's own deadline wins over the LRU ttl
	assert.NoError(t, c.Set(ctx, "guild-1", "actors", "user-1", "4", -time.Second))

	val, err := c.Get(ctx, "guild-1", "actors", "user-1")
	assert.NoError(t, err)
	assert.Empty(t, val)
}

func TestMemCache_InvalidateGuild(t *testing.T) {
	ctx := context.Background()
	c := NewMemCache(16, time.Minute)

	assert.NoError(t, c.Set(ctx, "guild-1", "actors", "user-1", "4", time.Minute))
	assert.NoError(t, c.Set(ctx, "guild-1", "assignments", "", `{"role-1":4}`, time.Minute))
	assert.NoError(t, c.Set(ctx, "guild-2", "actors", "user-1", "8", time.Minute))

	assert.NoError(t, c.InvalidateGuild(ctx, "guild-1"))

	// every guild-1 entry is gone, including per-actor ones
	val, err := c.Get(ctx, "guild-1", "actors", "user-1")
	assert.NoError(t, err)
	assert.Empty(t, val)

	val, err = c.Get(ctx, "guild-1", "assignments", "")
	assert.NoError(t, err)
	assert.Empty(t, val)

	// other guilds are untouched
	val, err = c.Get(ctx, "guild-2", "actors", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "8", val)

	// writes after invalidation land in the new generation
	assert.NoError(t, c.Set(ctx, "guild-1", "actors", "user-1", "6", time.Minute))
	val, err = c.Get(ctx, "guild-1", "actors", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "6", val)
}
