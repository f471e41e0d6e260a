package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

type RateLimitRepository interface {
	// Increment - counts one hit for identifier in the current fixed window
	// and returns the number of hits seen in that window so far.
	Increment(ctx context.Context, identifier string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
}

type dbRateLimit struct {
	client *redis.Client
	now    func() time.Time
}

func NewRateLimitRepository(client *redis.Client) RateLimitRepository {
	return &dbRateLimit{
		client: client,
		now:    time.Now,
	}
}

func (that *dbRateLimit) Increment(ctx context.Context, identifier string, window time.Duration) (int64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("invalid window %s", window)
	}

	bucket := that.now().UnixNano() / int64(window)
	key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, identifier, bucket)

	pipe := that.client.TxPipeline()
	hits := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count hit: %w", err)
	}

	return hits.Val(), nil
}

func (that *dbRateLimit) Ping(ctx context.Context) error {
	if err := that.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}
