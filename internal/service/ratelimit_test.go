package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRateLimitRepo struct {
	mock.Mock
}

func (that *mockRateLimitRepo) Increment(ctx context.Context, identifier string, window time.Duration) (int64, error) {
	args := that.Called(ctx, identifier, window)
	return args.Get(0).(int64), args.Error(1)
}

func TestRateLimitService_Allow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Allows requests up to the limit", func(t *testing.T) {
		// Given: a client on its second request with a limit of two
		repo := &mockRateLimitRepo{}
		repo.On("Increment", mock.Anything, "10.0.0.1", time.Minute).Return(int64(2), nil).Once()

		limiter := NewRateLimitService(logger, repo, 2, time.Minute)

		// When: the request is checked
		allowed, err := limiter.Allow("10.0.0.1")

		// Then: it passes
		require.NoError(t, err)
		assert.True(t, allowed)
		repo.AssertExpectations(t)
	})

	t.Run("Denies requests over the limit", func(t *testing.T) {
		repo := &mockRateLimitRepo{}
		repo.On("Increment", mock.Anything, "10.0.0.1", time.Minute).Return(int64(3), nil).Once()

		limiter := NewRateLimitService(logger, repo, 2, time.Minute)

		allowed, err := limiter.Allow("10.0.0.1")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Storage failure", func(t *testing.T) {
		// Given: redis is down
		repo := &mockRateLimitRepo{}
		repo.On("Increment", mock.Anything, "10.0.0.1", time.Minute).Return(int64(0), errors.New("connection refused")).Once()

		limiter := NewRateLimitService(logger, repo, 2, time.Minute)

		// When: the request is checked
		allowed, err := limiter.Allow("10.0.0.1")

		// Then: the error surfaces and the request is not allowed
		require.Error(t, err)
		assert.False(t, allowed)
	})
}
