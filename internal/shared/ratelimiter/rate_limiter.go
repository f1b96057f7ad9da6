// Package ratelimiter limits how often an operation may run within a fixed window.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface limits how frequently an operation such as an outbound upload may run.
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter is a fixed-window limiter safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // calls allowed per interval
	interval  time.Duration // window length
	count     int
	lastReset time.Time

	now func() time.Time
}

// NewRateLimiter creates a RateLimiter. A non-positive limit disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// reserve counts one call and returns how long the caller must wait before running it.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// Reset the count once the interval has passed.
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		// Over the limit: the call belongs to the next window.
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 1
	}

	// lastReset lies in the future while calls are queued for a later window.
	wait := rl.lastReset.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait
}

// Wait blocks until the call fits in the current window or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}
	wait := rl.reserve()
	if wait <= 0 {
		return ctx.Err()
	}

	slog.Info("rate limit hit, waiting", "limit", rl.limit, "wait", wait)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
