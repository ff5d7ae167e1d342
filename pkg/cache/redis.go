package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig holds the connection settings.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type redisCounter struct {
	client *redis.Client
}

// NewRedisLimiter connects to Redis and returns a limiter whose keys are
// namespaced by prefix. It fails when the server does not answer PING.
func NewRedisLimiter(ctx context.Context, cfg RedisConfig, prefix string, limit int, window time.Duration) (*WindowLimiter, func() error, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}
	return newWindowLimiter(&redisCounter{client: rdb}, prefix, limit, window), rdb.Close, nil
}

// incr runs INCR and starts the window on the first hit, so later hits do
// not extend it.
func (c *redisCounter) incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit counter %s: %w", key, err)
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("rate limit expiry %s: %w", key, err)
		}
		return n, window, nil
	}
	ttl, err := c.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit ttl %s: %w", key, err)
	}
	return n, ttl, nil
}
