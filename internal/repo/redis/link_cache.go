package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LinkCache memoizes invite links in Redis with a TTL. Concurrent callers
// for the same key inside one process are coalesced through singleflight, so
// at most one export call runs per key per window.
type LinkCache struct {
	client *goredis.Client
	group  singleflight.Group
}

func NewLinkCache(client *goredis.Client) *LinkCache {
	return &LinkCache{client: client}
}

func (c *LinkCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (string, error)) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}
	if key == "" || ttl <= 0 {
		return "", fmt.Errorf("invalid cache key or ttl")
	}

	value, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return value, nil
	}
	if err != goredis.Nil {
		return "", fmt.Errorf("get cached value: %w", err)
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the key while we waited.
		value, err := c.client.Get(ctx, key).Result()
		if err == nil {
			return value, nil
		}
		if err != goredis.Nil {
			return "", fmt.Errorf("get cached value: %w", err)
		}

		computed, err := compute(ctx)
		if err != nil {
			return "", err
		}
		if err := c.client.Set(ctx, key, computed, ttl).Err(); err != nil {
			return "", fmt.Errorf("cache value: %w", err)
		}
		return computed, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
