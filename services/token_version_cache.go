package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenVersionCache remembers each account's current token version so
// that authenticating a request does not hit the account store every time.
type RedisTokenVersionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisTokenVersionCache connects to redisURL and pings it.
func NewRedisTokenVersionCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisTokenVersionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenVersionCache{Client: client, TTL: ttl}, nil
}

func tokenVersionKey(accountID string) string {
	return "token_version:" + accountID
}

// Get returns the cached version and whether it was present.
func (c *RedisTokenVersionCache) Get(ctx context.Context, accountID string) (int, bool, error) {
	value, err := c.Client.Get(ctx, tokenVersionKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading token version: %w", err)
	}

	version, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, nil
	}
	return version, true, nil
}

func (c *RedisTokenVersionCache) Set(ctx context.Context, accountID string, version int) error {
	if err := c.Client.Set(ctx, tokenVersionKey(accountID), version, c.TTL).Err(); err != nil {
		return fmt.Errorf("writing token version: %w", err)
	}
	return nil
}

func (c *RedisTokenVersionCache) Invalidate(ctx context.Context, accountID string) error {
	if err := c.Client.Del(ctx, tokenVersionKey(accountID)).Err(); err != nil {
		return fmt.Errorf("dropping token version: %w", err)
	}
	return nil
}

// Ping checks the Redis connection for health reporting.
func (c *RedisTokenVersionCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisTokenVersionCache) Close() error {
	return c.Client.Close()
}
