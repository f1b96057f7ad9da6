// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"feed_backend/internal/feature/auth/domain/entity"
	authusecase "feed_backend/internal/feature/auth/usecase"
	feedusecase "feed_backend/internal/feature/feed/usecase"
)

// UserStore is the repository being decorated: the account repository plus
// the author lookup used by the feed.
type UserStore interface {
	authusecase.UserRepository
	feedusecase.AuthorRepository
}

// CachingUserRepository decorates a UserStore with Redis caching of author
// projections. Only FindAuthors is cached; profile reads and the auth gate
// always go to the store.
type CachingUserRepository struct {
	inner     UserStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ UserStore = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserStore with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "authors".
// A nil rdb disables caching.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner UserStore, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "authors"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through.
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	return c.inner.Create(ctx, user)
}

// FindByEmail passes through.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID passes through.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.inner.FindByID(ctx, id)
}

// UpdateProfile updates the store and then drops the cached author entry,
// so the new name shows up on every post of the user.
func (c *CachingUserRepository) UpdateProfile(ctx context.Context, id uint, upd entity.ProfileUpdate) (*entity.User, error) {
	user, err := c.inner.UpdateProfile(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, c.cacheKey(id)).Err(); err != nil {
			slog.Warn("author cache invalidation failed", "error", err, "user_id", id)
		}
	}
	return user, nil
}

// FindAuthors serves what it can from the cache and loads the rest from the store.
func (c *CachingUserRepository) FindAuthors(ctx context.Context, ids []uint) (map[uint]entity.Author, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil || len(ids) == 0 {
		return c.inner.FindAuthors(ctx, ids)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.cacheKey(id)
	}

	out := make(map[uint]entity.Author, len(ids))
	missing := ids

	// 1) Check cache
	if vals, err := c.rdb.MGet(ctx, keys...).Result(); err == nil {
		missing = make([]uint, 0, len(ids))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var a entity.Author
			if err := json.Unmarshal([]byte(s), &a); err != nil {
				// Delete corrupted cache entry
				_ = c.rdb.Del(ctx, keys[i]).Err()
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = a
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	// 2) Fallback to database
	loaded, err := c.inner.FindAuthors(ctx, missing)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	for _, id := range missing {
		a, ok := loaded[id]
		if !ok {
			continue
		}
		out[id] = a
		if b, err := json.Marshal(a); err == nil {
			_ = c.rdb.Set(ctx, c.cacheKey(id), b, c.ttl).Err()
		}
	}
	return out, nil
}

// cacheKey generates the cache key of one author.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}
