package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces every key this service writes so a shared
// Redis instance stays navigable.
const defaultKeyPrefix = "hrdesk:"

// scanBatch is the COUNT hint passed to SCAN during prefix deletion.
const scanBatch = 100

// RedisClient is a Client backed by Redis.
type RedisClient struct {
	client *redis.Client
	prefix string
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string
	// Password is optional; empty means no AUTH.
	Password string
	// DB selects the logical database number.
	DB int
	// PoolSize caps the connection pool (0 = driver default).
	PoolSize int
	// Prefix namespaces all keys; defaults to "hrdesk:".
	Prefix string
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(cfg RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisClient{client: client, prefix: prefix}, nil
}

// Get returns the value stored under key, or ErrCacheMiss.
func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: redis get: %w", err)
	}
	return val, nil
}

// Set stores value under key. A non-positive ttl means no expiry.
func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache: redis delete: %w", err)
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix using SCAN, so large
// keyspaces are walked without blocking the server.
func (c *RedisClient) DeleteByPrefix(ctx context.Context, prefix string) error {
	pattern := c.prefix + prefix + "*"
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache: redis delete by prefix: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: redis scan: %w", err)
	}
	return nil
}

// Ping verifies the connection. Used by readiness checks and diagnostics.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (c *RedisClient) Close() error {
	return c.client.Close()
}
