package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brijnamkeen/store_api/internal/models"
)

// homeCacheKey is the Redis key for the rendered home-page sections.
const homeCacheKey = "home:categories"

// homeCacheTTL keeps the payload fresh enough for a storefront while sparing
// the database the per-section product queries.
const homeCacheTTL = 60 * time.Second

// HomeCache caches the composed home-page payload in Redis. Category and
// product mutations invalidate it so admins see their edits promptly.
type HomeCache struct {
	redis *RedisClient
}

// NewHomeCache creates a new HomeCache.
func NewHomeCache(redis *RedisClient) *HomeCache {
	return &HomeCache{redis: redis}
}

// Get returns the cached sections, or (nil, nil) on a cache miss.
func (c *HomeCache) Get(ctx context.Context) ([]models.HomeSection, error) {
	raw, err := c.redis.Get(ctx, homeCacheKey)
	if err != nil {
		// Treat any Redis failure as a miss; the caller falls through to the
		// database.
		return nil, nil
	}
	var sections []models.HomeSection
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("corrupt home cache entry: %w", err)
	}
	return sections, nil
}

// Set stores the composed sections.
func (c *HomeCache) Set(ctx context.Context, sections []models.HomeSection) error {
	data, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("failed to marshal home sections: %w", err)
	}
	return c.redis.Set(ctx, homeCacheKey, string(data), homeCacheTTL)
}

// Invalidate drops the cached payload.
func (c *HomeCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, homeCacheKey)
}
