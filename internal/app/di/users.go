package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "feed_backend/internal/feature/auth/adapters"
	"feed_backend/internal/platform/cache"
)

// NewUserRepository creates the user repository. If Redis is available,
// author projections are cached in it; otherwise every lookup hits the database.
func NewUserRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *cache.CachingUserRepository {
	return cache.NewCachingUserRepository(rdb, ttl, authadapters.NewUserRepository(db), "authors")
}
