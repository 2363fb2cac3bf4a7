// Package cache stages sanitized outputs in Redis so the dashboard can
// download a run's result after the upload response has been sent.
//
// Only sanitized bytes are stored, keyed by run ID with a TTL; the
// replacement consistency cache itself is never persisted.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Config contains cache configuration
type Config struct {
	RedisURL string        `yaml:"redis_url" mapstructure:"redis_url"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ResultCache handles Redis-based staging of sanitized run outputs.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultCache creates a Redis-backed result cache.
func NewResultCache(config *Config, logger *zap.Logger) (*ResultCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	cache := &ResultCache{
		client: client,
		ttl:    config.TTL,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Result cache initialized",
		zap.Duration("ttl", config.TTL),
	)

	return cache, nil
}

// Put stages a run's sanitized output under its run ID.
func (c *ResultCache) Put(ctx context.Context, runID string, output []byte) error {
	if err := c.client.Set(ctx, c.key(runID), output, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stage run output: %w", err)
	}

	c.logger.Debug("Run output staged",
		zap.String("run_id", runID),
		zap.Int("bytes", len(output)),
	)
	return nil
}

// Get returns the staged output for a run, or (nil, false, nil) when the
// run is unknown or its entry has expired.
func (c *ResultCache) Get(ctx context.Context, runID string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(runID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch run output: %w", err)
	}
	return data, true, nil
}

// Close releases the Redis connection.
func (c *ResultCache) Close() error {
	return c.client.Close()
}

func (c *ResultCache) key(runID string) string {
	return "datascrub:run:" + runID
}
