package model

import (
	"context"
	"time"
)

// SignInLimiter bounds sign-in and sign-up attempts per key.
type SignInLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
