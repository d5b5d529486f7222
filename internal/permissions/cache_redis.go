package permissions

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

// RedisCache backs the permission cache with redis plus a small in-process
// TinyLFU tier. The per-guild generation lives in redis, so bumping it
// invalidates the guild for every instance at once; the generation is read
// straight from redis on every call, never from the local tier.
type RedisCache struct {
	client *redis.Client
	data   *cache.Cache
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(redisURL string) (*RedisCache, error) {
	ctx := context.Background()
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	data := cache.New(&cache.Options{
		Redis:      rdb,
		LocalCache: cache.NewTinyLFU(10_000, time.Minute),
	})
	return &RedisCache{
		client: rdb,
		data:   data,
	}, nil
}

func (c *RedisCache) generation(ctx context.Context, guildId string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(guildId)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func generationKey(guildId string) string {
	return "moderation:gen:" + guildId
}

func cacheKey(guildId string, gen int64, name string, key string) string {
	return fmt.Sprintf("moderation:cache:%s:%d:%s:%s", guildId, gen, name, key)
}

func (c *RedisCache) Get(ctx context.Context, guildId string, name string, key string) (string, error) {
	gen, err := c.generation(ctx, guildId)
	if err != nil {
		return "", err
	}

	var val string
	err = c.data.Get(ctx, cacheKey(guildId, gen, name, key), &val)
	if err == cache.ErrCacheMiss {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, guildId string, name string, key string, val string, ttl time.Duration) error {
	gen, err := c.generation(ctx, guildId)
	if err != nil {
		return err
	}

	return c.data.Set(&cache.Item{
		Ctx:   ctx,
		Key:   cacheKey(guildId, gen, name, key),
		Value: val,
		TTL:   ttl,
	})
}

func (c *RedisCache) InvalidateGuild(ctx context.Context, guildId string) error {
	return c.client.Incr(ctx, generationKey(guildId)).Err()
}
