// Package cache implements core.Cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/berrycrepe/choco-chip/core"
)

type redisCache struct {
	client *redis.Client
	prefix string
}

var _ core.Cache = (*redisCache)(nil)

// NewRedis returns a JSON cache backed by client, namespacing keys with prefix.
func NewRedis(client *redis.Client, prefix string) core.Cache {
	return &redisCache{client: client, prefix: prefix}
}

// Open connects to the configured redis server.
func Open(conf core.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

func (c *redisCache) key(k string) string {
	return c.prefix + k
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	b, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "reading cache")
	}
	if err = json.Unmarshal(b, dest); err != nil {
		return false, errors.Wrap(err, "decoding cached value")
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "encoding cache value")
	}
	if err = c.client.Set(ctx, c.key(key), b, ttl).Err(); err != nil {
		return errors.Wrap(err, "writing cache")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return errors.Wrap(err, "deleting cache key")
	}
	return nil
}

type noopCache struct{}

// NewNoop returns a cache that never stores anything.
func NewNoop() core.Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, string) error { return nil }
