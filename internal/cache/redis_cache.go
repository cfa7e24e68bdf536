package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "gradebook"

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) CacheService {
	return &redisCache{
		client: client,
		logger: logger,
	}
}

func (r *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.Warn("Failed to write cache entry", "key", key, "error", err)
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

func (r *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		r.logger.Warn("Failed to read cache entry", "key", key, "error", err)
		return fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return nil
}

// DeletePattern removes every key matching a glob pattern. SCAN is used so
// large keyspaces do not block the server.
func (r *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	var deleted int
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache entry %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys %s: %w", pattern, err)
	}

	r.logger.Debug("Deleted cache entries", "pattern", pattern, "count", deleted)
	return nil
}

// ClassReportKey identifies a computed class report. The version makes stale
// entries unreachable as soon as the gradebook is saved again.
func ClassReportKey(gradebookID uint, version int, classID, periodID string) string {
	if periodID == "" {
		periodID = "all"
	}
	return fmt.Sprintf("%s:%d:v%d:class:%s:period:%s", keyPrefix, gradebookID, version, classID, periodID)
}

// GradebookPattern matches every cached entry of one gradebook.
func GradebookPattern(gradebookID uint) string {
	return fmt.Sprintf("%s:%d:*", keyPrefix, gradebookID)
}
