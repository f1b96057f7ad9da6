package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock returns a settable time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(limit int, interval time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, interval)
	rl.now = clock.Now
	rl.lastReset = clock.Now()
	return rl, clock
}

func TestRateLimiter_Reserve(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)

	assert.Zero(t, rl.reserve())
	assert.Zero(t, rl.reserve())

	clock.Advance(10 * time.Second)
	assert.Equal(t, 50*time.Second, rl.reserve(), "third call waits for the next window")
	assert.Equal(t, 50*time.Second, rl.reserve(), "fourth call shares the next window")
	assert.Equal(t, 110*time.Second, rl.reserve(), "fifth call is pushed one more window")
}

func TestRateLimiter_ResetAfterInterval(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Minute)

	assert.Zero(t, rl.reserve())
	clock.Advance(time.Minute)
	assert.Zero(t, rl.reserve())
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rl := NewRateLimiter(0, time.Minute)
		for i := 0; i < 100; i++ {
			assert.NoError(t, rl.Wait(context.Background()))
		}
	})

	t.Run("within limit returns immediately", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Hour)
		start := time.Now()
		for i := 0; i < 3; i++ {
			assert.NoError(t, rl.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("over limit honours context", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Hour)
		assert.NoError(t, rl.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
	})

	t.Run("over limit waits for the window", func(t *testing.T) {
		rl := NewRateLimiter(1, 50*time.Millisecond)
		assert.NoError(t, rl.Wait(context.Background()))

		start := time.Now()
		assert.NoError(t, rl.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})
}
