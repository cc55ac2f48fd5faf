// Package cache keeps recent nearby-garage search results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no entry is stored for the key.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "pitstop:nearby:"

// Client is the subset of redis.Cmdable the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// NearbyCache stores candidate garages per rounded search origin and radius.
type NearbyCache struct {
	client Client
	ttl    time.Duration
	log    *slog.Logger
}

// New creates a NearbyCache on top of a Redis client.
func New(client Client, ttl time.Duration, log *slog.Logger) *NearbyCache {
	return &NearbyCache{client: client, ttl: ttl, log: log}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Key builds the cache key. The origin is rounded to three decimals (about 110 m)
// so drivers standing close to each other share an entry.
func Key(origin models.Coordinates, radius float64) string {
	return fmt.Sprintf("%s%.3f:%.3f:%.0f", keyPrefix, origin.Latitude, origin.Longitude, radius)
}

// Get returns the garages stored for the search or ErrCacheMiss.
func (c *NearbyCache) Get(ctx context.Context, origin models.Coordinates, radius float64) ([]models.Garage, error) {
	raw, err := c.client.Get(ctx, Key(origin, radius)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read nearby cache: %w", err)
	}

	var garages []models.Garage
	if err = json.Unmarshal(raw, &garages); err != nil {
		c.log.WarnContext(ctx, "Dropping corrupt nearby cache entry", "error", err)
		return nil, ErrCacheMiss
	}

	return garages, nil
}

// Put stores the garages found for the search.
func (c *NearbyCache) Put(ctx context.Context, origin models.Coordinates, radius float64, garages []models.Garage) error {
	raw, err := json.Marshal(garages)
	if err != nil {
		return fmt.Errorf("failed to encode nearby cache entry: %w", err)
	}

	if err = c.client.Set(ctx, Key(origin, radius), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write nearby cache: %w", err)
	}

	return nil
}
