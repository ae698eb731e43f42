package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Open creates a Redis client from a connection URL.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func Open(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return redis.NewClient(opts), nil
}

// Ping checks if the store is reachable.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
