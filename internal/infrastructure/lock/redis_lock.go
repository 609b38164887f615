package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sweepLockKeyFormat = "lending-engine:sweep-lock:%s"
	sweepLockTTL       = 30 * time.Minute
)

// RedisSweepLock serializes billing sweep runs per business date with a
// SET NX key. Advisory only: the billing-done compare-and-set remains the
// correctness guarantee when redis is unavailable.
type RedisSweepLock struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisSweepLock(client *redis.Client, logger *slog.Logger) *RedisSweepLock {
	return &RedisSweepLock{client: client, logger: logger.With("component", "RedisSweepLock")}
}

func (l *RedisSweepLock) Acquire(ctx context.Context, businessDate time.Time) (bool, func(), error) {
	key := fmt.Sprintf(sweepLockKeyFormat, businessDate.Format(time.DateOnly))

	acquired, err := l.client.SetNX(ctx, key, time.Now().Format(time.RFC3339), sweepLockTTL).Result()
	if err != nil {
		return false, nil, fmt.Errorf("failed to acquire sweep lock %s: %w", key, err)
	}
	if !acquired {
		l.logger.WarnContext(ctx, "Sweep lock already held", "key", key)
		return false, nil, nil
	}

	release := func() {
		if err := l.client.Del(context.Background(), key).Err(); err != nil {
			l.logger.Warn("Failed to release sweep lock, relying on TTL expiry", "key", key, "error", err)
		}
	}
	return true, release, nil
}
