package media

import (
	"context"
	"fmt"
)

// Limiter blocks until the next call is allowed or ctx is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimitedStore throttles uploads to the wrapped store.
type RateLimitedStore struct {
	inner   Store
	limiter Limiter
}

var _ Store = (*RateLimitedStore)(nil)

// NewRateLimitedStore decorates inner with limiter.
func NewRateLimitedStore(inner Store, limiter Limiter) *RateLimitedStore {
	return &RateLimitedStore{inner: inner, limiter: limiter}
}

// Inner returns the wrapped store.
func (s *RateLimitedStore) Inner() Store {
	return s.inner
}

// Store waits for the limiter and then delegates.
func (s *RateLimitedStore) Store(ctx context.Context, folder string, upload Upload) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("upload throttled: %w", err)
	}
	return s.inner.Store(ctx, folder, upload)
}
