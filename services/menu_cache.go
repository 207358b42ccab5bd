package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ju699/FlexFood/utils"
)

// MenuCache keeps the public menu payload per slug in Redis so the customer
// read path does not hit the database on every scan. Entries are invalidated
// on every restaurant or product write. A nil cache (no REDIS_ADDR) is a
// no-op and every read falls through to the database.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func menuKey(slug string) string {
	return "menu:" + slug
}

// Get unmarshals the cached menu for slug into dest. The bool reports a hit.
func (c *MenuCache) Get(ctx context.Context, slug string, dest interface{}) bool {
	if c == nil || c.Client == nil {
		return false
	}
	raw, err := c.Client.Get(ctx, menuKey(slug)).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.ErrorLogger.Printf("menu cache read failed for %s: %v", slug, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		utils.ErrorLogger.Printf("menu cache entry corrupt for %s: %v", slug, err)
		return false
	}
	return true
}

func (c *MenuCache) Set(ctx context.Context, slug string, value interface{}) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, menuKey(slug), raw, c.TTL).Err(); err != nil {
		utils.ErrorLogger.Printf("menu cache write failed for %s: %v", slug, err)
	}
}

func (c *MenuCache) Invalidate(ctx context.Context, slug string) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, menuKey(slug)).Err(); err != nil {
		utils.ErrorLogger.Printf("menu cache invalidation failed for %s: %v", slug, err)
	}
}
