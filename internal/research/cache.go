package research

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps research results in Redis so repeat lookups against the same
// site skip the fetch. Every failure path degrades to a live fetch.
type Cache struct {
	rdb *redis.Client
}

// NewCache wraps a Redis client; a nil client yields a nil cache, which the
// researcher treats as "no cache".
func NewCache(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb}
}

func cacheKey(urlStr string) string {
	return "research:" + urlStr
}

func (c *Cache) Get(ctx context.Context, urlStr string) (*Result, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(urlStr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("[Cache] ⚠️ read failed for %s: %v", urlStr, err)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		log.Printf("[Cache] ⚠️ corrupt entry for %s: %v", urlStr, err)
		return nil, false
	}
	return &res, true
}

func (c *Cache) Put(ctx context.Context, urlStr string, res *Result, ttl time.Duration) {
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(urlStr), raw, ttl).Err(); err != nil {
		log.Printf("[Cache] ⚠️ write failed for %s: %v", urlStr, err)
	}
}
