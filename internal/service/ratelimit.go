package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const rateLimitTimeout = 500 * time.Millisecond

type rateLimitRepository interface {
	Increment(ctx context.Context, identifier string, window time.Duration) (int64, error)
}

// RateLimitService - counts requests per client in fixed windows shared
// through redis. It satisfies echo's RateLimiterStore.
type RateLimitService interface {
	Allow(identifier string) (bool, error)
}

type rateLimitService struct {
	logger *slog.Logger

	repo     rateLimitRepository
	requests int64
	window   time.Duration
}

func NewRateLimitService(logger *slog.Logger, repo rateLimitRepository, requests int, window time.Duration) RateLimitService {
	return &rateLimitService{
		logger:   logger.With("component", "ratelimit"),
		repo:     repo,
		requests: int64(requests),
		window:   window,
	}
}

func (that *rateLimitService) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rateLimitTimeout)
	defer cancel()

	hits, err := that.repo.Increment(ctx, identifier, that.window)
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	if hits > that.requests {
		that.logger.Debug("rate limit exceeded", "identifier", identifier, "hits", hits)
		return false, nil
	}

	return true, nil
}
