package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lungscan/scan-api/internal/core/ports"
)

const statsTTL = time.Minute

// StatsCache holds computed dashboard stats per doctor for a short window,
// so repeated dashboard refreshes don't re-aggregate the scans collection.
// Key format: stats:<doctor_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats for a doctor, or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context, doctorID string) (*ports.DashboardStats, error) {
	raw, err := c.client.Get(ctx, c.key(doctorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats for a doctor (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, doctorID string, stats *ports.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(doctorID), raw, statsTTL).Err()
}

// Invalidate drops the cached stats after a new scan record lands.
func (c *StatsCache) Invalidate(ctx context.Context, doctorID string) error {
	return c.client.Del(ctx, c.key(doctorID)).Err()
}

func (c *StatsCache) key(doctorID string) string {
	return "stats:" + doctorID
}
