// Package cache keeps the computed dashboard summary in Redis so repeated
// dashboard loads skip the full recomputation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akg580/review-insights/internal/domain"
)

const (
	keyPrefix     = "review-insights:summary:v1"
	generationKey = keyPrefix + ":gen"
)

func summaryKey(gen int64) string {
	return fmt.Sprintf("%s:%d", keyPrefix, gen)
}

// ErrMiss is returned by Get when no summary is cached.
var ErrMiss = errors.New("cache: miss")

// SummaryCache stores DashboardSummaries keyed by collection generation.
// Invalidate advances the generation, so a summary computed before a
// submission can only be stored under a generation no reader asks for.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache returns a cache whose entries expire after ttl.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Generation returns the current collection generation, 0 before the first
// Invalidate.
func (c *SummaryCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get summary generation: %w", err)
	}
	return gen, nil
}

// Get returns the summary cached for gen or ErrMiss.
func (c *SummaryCache) Get(ctx context.Context, gen int64) (*domain.DashboardSummary, error) {
	data, err := c.client.Get(ctx, summaryKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("redis get summary: %w", err)
	}

	var s domain.DashboardSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	return &s, nil
}

// Set stores the summary computed for gen.
func (c *SummaryCache) Set(ctx context.Context, gen int64, s *domain.DashboardSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set summary: %w", err)
	}
	return nil
}

// Invalidate advances the generation and drops the previous generation's
// entry. Entries written later for an old generation are never read and
// expire with the TTL.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr summary generation: %w", err)
	}
	if err := c.client.Del(ctx, summaryKey(gen-1)).Err(); err != nil {
		return fmt.Errorf("redis del summary: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
