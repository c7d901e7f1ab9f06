package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisTenantCache implements TenantCache using Redis. Suitable for
// distributed deployments where multiple instances share resolution state.
type RedisTenantCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisTenantCache creates a Redis-backed tenant cache and verifies
// the connection
func NewRedisTenantCache(cfg RedisConfig) (*RedisTenantCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTenantCache{
		client:    client,
		keyPrefix: "tenant:resolved:",
	}, nil
}

// NewRedisTenantCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisTenantCacheWithClient(client *redis.Client, keyPrefix string) *RedisTenantCache {
	if keyPrefix == "" {
		keyPrefix = "tenant:resolved:"
	}
	return &RedisTenantCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached tenant for a user
func (c *RedisTenantCache) Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, c.keyPrefix+userID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to read tenant cache: %w", err)
	}

	tenantID, err := uuid.Parse(val)
	if err != nil {
		// Corrupt entry, treat as a miss
		return uuid.Nil, false, nil
	}
	return tenantID, true, nil
}

// Set stores the resolved tenant for a user
func (c *RedisTenantCache) Set(ctx context.Context, userID, tenantID uuid.UUID, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+userID.String(), tenantID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tenant cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry for a user
func (c *RedisTenantCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, c.keyPrefix+userID.String()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tenant cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisTenantCache) Close() error {
	return c.client.Close()
}

// Ensure RedisTenantCache implements TenantCache
var _ TenantCache = (*RedisTenantCache)(nil)
