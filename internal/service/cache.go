package service

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by RoundCache.Get when no entry exists.
var ErrCacheMiss = errors.New("cache: miss")

// RoundCache caches serialized funding-round detail views. The negotiation
// service invalidates an entry on every offer mutation so polling readers
// never see stale negotiation state past the TTL window.
type RoundCache interface {
	Get(ctx context.Context, roundID string) ([]byte, error)
	Set(ctx context.Context, roundID string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, roundID string) error
}

const roundCacheKeyPrefix = "fundinground:"

// RedisRoundCache backs RoundCache with Redis.
type RedisRoundCache struct {
	client *redis.Client
}

func NewRedisRoundCache(client *redis.Client) *RedisRoundCache {
	return &RedisRoundCache{client: client}
}

func (c *RedisRoundCache) Get(ctx context.Context, roundID string) ([]byte, error) {
	payload, err := c.client.Get(ctx, roundCacheKeyPrefix+roundID).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *RedisRoundCache) Set(ctx context.Context, roundID string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, roundCacheKeyPrefix+roundID, payload, ttl).Err()
}

func (c *RedisRoundCache) Invalidate(ctx context.Context, roundID string) error {
	return c.client.Del(ctx, roundCacheKeyPrefix+roundID).Err()
}

// NoopRoundCache disables caching. Useful in tests and when Redis is absent.
type NoopRoundCache struct{}

func (NoopRoundCache) Get(ctx context.Context, roundID string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (NoopRoundCache) Set(ctx context.Context, roundID string, payload []byte, ttl time.Duration) error {
	return nil
}

func (NoopRoundCache) Invalidate(ctx context.Context, roundID string) error {
	return nil
}
