package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/baasproxy/internal/model"
)

const keyPrefix = "baasproxy:signin:"

type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

var _ model.SignInLimiter = (*Redis)(nil)

// Redis is a fixed window limiter: the first hit in a window sets the key
// expiry, later hits only increment.
type Redis struct {
	client counter
	limit  int64
	window time.Duration
}

// NewRedis creates a limiter allowing limit attempts per window per key.
func NewRedis(client redis.Cmdable, limit int, window time.Duration) *Redis {
	return newRedis(client, limit, window)
}

func newRedis(client counter, limit int, window time.Duration) *Redis {
	if window < time.Second {
		window = time.Second
	}
	return &Redis{client: client, limit: int64(limit), window: window}
}

// Allow counts one attempt for key and reports whether it is within the limit.
// When denied, retryAfter is the time left in the current window.
func (r *Redis) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if key == "" {
		key = "unknown"
	}
	redisKey := keyPrefix + key

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set attempts window: %w", err)
		}
	}
	if count <= r.limit {
		return true, 0, nil
	}

	ttl, err := r.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read attempts window: %w", err)
	}
	if ttl <= 0 {
		// key lost its expiry; restore it so the counter cannot stick
		_ = r.client.Expire(ctx, redisKey, r.window).Err()
		return false, r.window, nil
	}

	return false, ttl, nil
}
