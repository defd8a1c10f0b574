package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wordsim/internal/embeddings"
)

// Key prefix for cached vectors
const vectorKeyPrefix = "vec:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Get retrieves a cached vector by key
func (c *RedisCache) Get(ctx context.Context, key string) (embeddings.Vector, bool, error) {
	data, err := c.client.Get(ctx, vectorKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil // Cache miss
	}
	if err != nil {
		return nil, false, err
	}
	vec, err := embeddings.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached vector %q: %w", key, err)
	}
	return vec, true, nil
}

// Set stores a vector with TTL
func (c *RedisCache) Set(ctx context.Context, key string, vec embeddings.Vector, ttl time.Duration) error {
	return c.client.Set(ctx, vectorKeyPrefix+key, embeddings.Encode(vec), ttl).Err()
}

// Close closes the cache connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
