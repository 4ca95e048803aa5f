package ratelimit

import "context"

type RateLimiter interface {
	// Allow reports whether the key may perform another request within the
	// configured window.
	Allow(ctx context.Context, key string) (bool, error)
	// Remaining returns how many requests the key has left in the window.
	Remaining(ctx context.Context, key string) (int64, error)
	// Reset clears all counters for the key.
	Reset(ctx context.Context, key string) error
}
