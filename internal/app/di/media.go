// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"feed_backend/internal/app/config"
	infrahttp "feed_backend/internal/platform/http"
	"feed_backend/internal/platform/media"
	"feed_backend/internal/shared/ratelimiter"
)

// NewMediaStore creates the configured media backend, throttled when
// MEDIA_UPLOADS_PER_MINUTE is set.
func NewMediaStore(cfg *config.Config) (media.Store, error) {
	var store media.Store
	switch cfg.MediaBackend {
	case config.MediaBackendHTTP:
		httpClient := infrahttp.NewHTTPClient(cfg.MediaTimeout)
		store = media.NewHTTPStore(httpClient, cfg.MediaRemoteURL, cfg.MediaRemoteToken)
	case config.MediaBackendLocal, "":
		store = media.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}

	if cfg.MediaUploadsPerMinute > 0 {
		limiter := ratelimiter.NewRateLimiter(cfg.MediaUploadsPerMinute, time.Minute)
		store = media.NewRateLimitedStore(store, limiter)
	}
	return store, nil
}
