package permissions

import (
	"context"
	"time"
)

// Cache is a guild-partitioned string cache in front of the permission
// stores. A miss is reported as an empty value with a nil error; errors are
// infrastructure failures the caller may ignore, since the cache is an
// optimisation layer and never the source of truth.
//
// InvalidateGuild drops every entry for a guild at once, including per-actor
// entries, so a configuration write is visible on the very next read.
type Cache interface {
	Get(ctx context.Context, guildId string, name string, key string) (string, error)
	Set(ctx context.Context, guildId string, name string, key string, val string, ttl time.Duration) error
	InvalidateGuild(ctx context.Context, guildId string) error
}

// NopCache never stores anything, forcing every read through to the stores.
type NopCache struct{}

var _ Cache = NopCache{}

func NewNopCache() NopCache {
	return NopCache{}
}

func (NopCache) Get(_ context.Context, _ string, _ string, _ string) (string, error) {
	return "", nil
}

func (NopCache) Set(_ context.Context, _ string, _ string, _ string, _ string, _ time.Duration) error {
	return nil
}

func (NopCache) InvalidateGuild(_ context.Context, _ string) error {
	return nil
}
