package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const statsKey = "dashboard:stats"

// Client wraps the redis connection used as a short-lived cache for
// dashboard aggregates. The rest of the system reads and writes Postgres
// directly; losing Redis only costs recomputation.
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) SetStats(value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	return c.rdb.Set(ctx, statsKey, jsonData, ttl).Err()
}

// GetStats unmarshals the cached stats into dest. The bool result reports
// whether the cache held a value.
func (c *Client) GetStats(dest interface{}) (bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, statsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get stats: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return true, nil
}

func (c *Client) InvalidateStats() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, statsKey).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
