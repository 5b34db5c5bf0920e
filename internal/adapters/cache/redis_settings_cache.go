package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "media:player_settings"

// RedisSettingsCache caches player settings with an injected TTL and an
// explicit invalidation hook. It replaces the module-level settings cache of
// older revisions with an object owned by the wiring context.
type RedisSettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSettingsCache(client *redis.Client, ttl time.Duration) *RedisSettingsCache {
	return &RedisSettingsCache{client: client, ttl: ttl}
}

func (c *RedisSettingsCache) Get(ctx context.Context) (map[string]any, bool, error) {
	raw, err := c.client.Get(ctx, settingsCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	settings := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		// A corrupt entry degrades to a miss so the caller re-reads storage.
		return nil, false, nil
	}
	return settings, true, nil
}

func (c *RedisSettingsCache) Put(ctx context.Context, settings map[string]any) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingsCacheKey, raw, c.ttl).Err()
}

func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, settingsCacheKey).Err()
}
