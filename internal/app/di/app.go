package di

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"feed_backend/internal/app/config"
	"feed_backend/internal/app/router"
	authhandler "feed_backend/internal/feature/auth/transport/handler"
	authusecase "feed_backend/internal/feature/auth/usecase"
	feedhandler "feed_backend/internal/feature/feed/transport/handler"
	feedusecase "feed_backend/internal/feature/feed/usecase"
	postadapters "feed_backend/internal/feature/post/adapters"
	posthandler "feed_backend/internal/feature/post/transport/handler"
	postusecase "feed_backend/internal/feature/post/usecase"
	"feed_backend/internal/platform/http/handler"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/platform/media"
	"feed_backend/internal/platform/password"
)

// NewRouterDeps builds every repository, usecase and handler and returns
// them ready for router.NewRouter. rdb may be nil.
func NewRouterDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (router.Deps, error) {
	store, err := NewMediaStore(cfg)
	if err != nil {
		return router.Deps{}, err
	}

	users := NewUserRepository(db, rdb, cfg.AuthorCacheTTL)
	posts := postadapters.NewPostRepository(db)
	tokens := jwtmw.NewGenerator(cfg.JWTSecret)

	authUC := authusecase.NewAuthUsecase(users, tokens, password.NewBcryptHasher(cfg.BcryptCost), store)
	feedUC := feedusecase.NewFeedUsecase(posts, users)
	postUC := postusecase.NewPostUsecase(posts, feedUC, store)

	isNotFound := func(err error) bool { return errors.Is(err, authusecase.ErrUserNotFound) }

	deps := router.Deps{
		Auth:           authhandler.NewAuthHandler(authUC, cfg.MaxUploadBytes),
		Posts:          posthandler.NewPostHandler(postUC, cfg.MaxUploadBytes),
		Feed:           feedhandler.NewFeedHandler(feedUC),
		Health:         handler.NewHealth(healthChecks(db, rdb)),
		AuthGate:       jwtmw.AuthRequired(tokens, users, isNotFound),
		Logger:         logger,
		Development:    !cfg.IsProduction(),
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateWindow: cfg.AuthRateWindow,
	}
	if local, ok := unwrapLocal(store); ok {
		deps.UploadDir = local.Dir()
	}
	return deps, nil
}

// unwrapLocal reports whether store writes to local disk.
func unwrapLocal(store media.Store) (*media.LocalStore, bool) {
	if rl, ok := store.(*media.RateLimitedStore); ok {
		store = rl.Inner()
	}
	local, ok := store.(*media.LocalStore)
	return local, ok
}

func healthChecks(db *gorm.DB, rdb *redis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
