// Package ratelimit throttles login attempts. A redis-backed sliding window
// limiter is used when redis is configured; otherwise a no-op limiter keeps
// the login path unconditional.
package ratelimit

import "context"

type LoginLimiter interface {
	// Allow reports whether another login attempt for key is permitted.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempt window for key after a successful login.
	Reset(ctx context.Context, key string) error
}

// NoopLimiter permits everything.
type NoopLimiter struct{}

func NewNoopLimiter() *NoopLimiter {
	return &NoopLimiter{}
}

func (*NoopLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

func (*NoopLimiter) Reset(context.Context, string) error {
	return nil
}
