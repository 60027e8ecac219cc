package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dashboard aggregates are cached by time range under these keys.
const (
	DashboardYearRangeKey    = "dashboard:year-range"
	DashboardStatsKeyPattern = "dashboard:stats:*"
)

// RedisConfig contains connection settings for Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// RedisInvalidator deletes cached dashboard aggregates after new orders land.
type RedisInvalidator struct {
	client   redis.UniversalClient
	keys     []string
	patterns []string
	logger   *slog.Logger
}

func NewRedisInvalidator(client redis.UniversalClient, logger *slog.Logger) *RedisInvalidator {
	return &RedisInvalidator{
		client:   client,
		keys:     []string{DashboardYearRangeKey},
		patterns: []string{DashboardStatsKeyPattern},
		logger:   logger,
	}
}

// InvalidateDashboards removes the fixed keys and every key matching the
// stats pattern. Patterns are walked with SCAN so large keyspaces do not
// block the server.
func (r *RedisInvalidator) InvalidateDashboards(ctx context.Context) error {
	toDelete := append([]string(nil), r.keys...)

	for _, pattern := range r.patterns {
		iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			toDelete = append(toDelete, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan %s: %w", pattern, err)
		}
	}

	deleted, err := r.client.Del(ctx, toDelete...).Result()
	if err != nil {
		return fmt.Errorf("failed to delete dashboard keys: %w", err)
	}

	r.logger.Debug("dashboard cache invalidated", "keys", len(toDelete), "deleted", deleted)
	return nil
}

// NoopInvalidator is used when no cache is configured.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateDashboards(context.Context) error { return nil }
