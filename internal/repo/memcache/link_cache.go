package memcache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const defaultCapacity = 1024

// LinkCache is the in-process fallback when Redis is not configured. The
// expirable LRU fixes the expiry window at construction, so GetOrCompute
// rejects any ttl that differs from the constructed one instead of silently
// caching under the wrong window.
type LinkCache struct {
	data  *expirable.LRU[string, string]
	ttl   time.Duration
	group singleflight.Group
}

func NewLinkCache(ttl time.Duration) *LinkCache {
	return &LinkCache{
		data: expirable.NewLRU[string, string](defaultCapacity, nil, ttl),
		ttl:  ttl,
	}
}

func (c *LinkCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (string, error)) (string, error) {
	if ttl != c.ttl {
		return "", fmt.Errorf("link cache expires after %s, cannot honor ttl %s", c.ttl, ttl)
	}

	if value, ok := c.data.Get(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, ok := c.data.Get(key); ok {
			return value, nil
		}
		computed, err := compute(ctx)
		if err != nil {
			return "", err
		}
		c.data.Add(key, computed)
		return computed, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
