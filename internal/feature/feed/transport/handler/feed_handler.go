// Package handler provides HTTP handlers for the feed read path.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/feed/transport/http/dto"
	"feed_backend/internal/feature/feed/usecase"
	"feed_backend/internal/feature/post/domain/entity"
	postdto "feed_backend/internal/feature/post/transport/http/dto"
	jwtmw "feed_backend/internal/platform/jwt"
)

// FeedUsecase defines the read operations used by the handler.
type FeedUsecase interface {
	ListAll(ctx context.Context, page, pageSize int) (*usecase.Page, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.PostView, error)
}

// FeedHandler serves the public feed and the caller's own posts.
type FeedHandler struct {
	feed FeedUsecase
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feed FeedUsecase) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// atoi returns 0 for anything that is not an integer, which the usecase
// replaces with the default.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ListAll handles GET /posts/all?page=&pageSize=. limit is accepted in place
// of pageSize.
func (h *FeedHandler) ListAll(c *gin.Context) {
	var req dto.FeedReq
	_ = c.ShouldBindQuery(&req)

	size := req.PageSize
	if size == "" {
		size = req.Limit
	}

	page, err := h.feed.ListAll(c.Request.Context(), atoi(req.Page), atoi(size))
	if err != nil {
		slog.Error("list feed failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}

	c.JSON(http.StatusOK, dto.FeedRes{
		Page:     page.Page,
		PageSize: page.PageSize,
		Posts:    postdto.NewPostResList(page.Posts),
	})
}

// ListMine handles GET /posts/profile: every post of the caller, newest first.
func (h *FeedHandler) ListMine(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	views, err := h.feed.ListByOwner(c.Request.Context(), caller.ID)
	if err != nil {
		slog.Error("list own posts failed", "error", err, "user_id", caller.ID)
		c.JSON(http.StatusInternalServerError, api.InternalError)
		return
	}
	c.JSON(http.StatusOK, postdto.NewPostResList(views))
}
