package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"learndeck/internal/platform/config"
)

// ErrMiss is returned when the key is absent. Callers fall through to the
// database on any cache error, so a miss and a transport failure are handled
// the same way.
var ErrMiss = errors.New("cache miss")

// Cache is a small JSON value cache on top of redis, used for the progress
// and course summaries that require several aggregate queries to rebuild.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func Connect() (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &Cache{rdb: rdb, ttl: config.AppConfig.SummaryCacheTTL}, nil
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		c.rdb.Del(ctx, keys...)
	}
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
