package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vocadrill/practice-service/internal/utils"
)

// ErrCacheMiss is returned when the requested key does not exist or has
// expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheService stores JSON-serializable values under string keys with a
// TTL. The exercise service uses it to hold in-flight instances and their
// answer keys between start and submission.
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
}

type redisCache struct {
	client *redis.Client
	logger utils.Logger
}

func NewRedisCache(client *redis.Client, logger utils.Logger) CacheService {
	return &redisCache{client: client, logger: logger}
}

func (r *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %q: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.ErrorContext(ctx, "Redis SET failed", "key", key, "error", err)
		return fmt.Errorf("failed to cache %q: %w", key, err)
	}
	return nil
}

func (r *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Redis GET failed", "key", key, "error", err)
		return fmt.Errorf("failed to read %q: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value for %q: %w", key, err)
	}
	return nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.ErrorContext(ctx, "Redis DEL failed", "key", key, "error", err)
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
