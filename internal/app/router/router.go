// Package router wires handlers and middleware into the HTTP route table.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	authhandler "feed_backend/internal/feature/auth/transport/handler"
	feedhandler "feed_backend/internal/feature/feed/transport/handler"
	posthandler "feed_backend/internal/feature/post/transport/handler"
	"feed_backend/internal/platform/http/middleware"
	"feed_backend/internal/platform/media"
)

// Deps aggregates everything the route table needs.
type Deps struct {
	Auth   *authhandler.AuthHandler
	Posts  *posthandler.PostHandler
	Feed   *feedhandler.FeedHandler
	Health gin.HandlerFunc
	// AuthGate resolves the caller on protected routes.
	AuthGate gin.HandlerFunc
	Logger   *slog.Logger

	// UploadDir, when set, is served under /uploads.
	UploadDir      string
	Development    bool
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Logger),
		middleware.SecureHeaders(d.Development),
	)

	// No auth
	if d.Health != nil {
		r.GET("/healthz", d.Health)
		r.HEAD("/healthz", d.Health)
	}
	if d.UploadDir != "" {
		r.Static(media.PublicPrefix, d.UploadDir)
	}

	authLimit := middleware.RateLimitByIP(d.AuthRateLimit, d.AuthRateWindow)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authLimit, d.Auth.Signup)
		auth.POST("/login", authLimit, d.Auth.Login)

		authed := auth.Group("", d.AuthGate)
		authed.GET("/profile", d.Auth.GetProfile)
		authed.PUT("/profile", d.Auth.UpdateProfile)
	}

	posts := r.Group("/posts")
	{
		// The public feed needs no token.
		posts.GET("/all", d.Feed.ListAll)

		authed := posts.Group("", d.AuthGate)
		authed.POST("/create", d.Posts.Create)
		authed.GET("/profile", d.Feed.ListMine)
		authed.PUT("/:id/edit", d.Posts.Edit)
		authed.DELETE("/:id/delete", d.Posts.Delete)
		authed.PUT("/:id/like", d.Posts.ToggleLike)
	}

	return r
}
