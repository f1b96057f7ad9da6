// Package handler provides HTTP handlers for the post feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
	"feed_backend/internal/feature/post/domain/entity"
	"feed_backend/internal/feature/post/transport/http/dto"
	"feed_backend/internal/feature/post/usecase"
	platformhandler "feed_backend/internal/platform/http/handler"
	jwtmw "feed_backend/internal/platform/jwt"
	"feed_backend/internal/platform/media"
)

// imageField is the multipart field carrying the optional post image.
const imageField = "image"

// PostUsecase defines the post operations used by the handler.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type PostUsecase interface {
	Create(ctx context.Context, userID uint, content *string, image *media.Upload) (*entity.PostView, error)
	Edit(ctx context.Context, userID, postID uint, content *string, image *media.Upload) (*entity.PostView, error)
	Delete(ctx context.Context, userID, postID uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (entity.LikeResult, error)
}

// PostHandler handles HTTP requests that mutate posts.
type PostHandler struct {
	posts          PostUsecase
	maxUploadBytes int64
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts PostUsecase, maxUploadBytes int64) *PostHandler {
	return &PostHandler{posts: posts, maxUploadBytes: maxUploadBytes}
}

// respondError maps usecase errors to HTTP responses.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not allowed to modify this post"})
	case errors.Is(err, usecase.ErrMediaUpload):
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "image upload failed"})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.InternalError)
	}
}

// postID parses the :id path parameter. Anything that is not a positive
// integer cannot name a post and is answered with 404.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
		return 0, false
	}
	return uint(id), true
}

// readPost binds the optional content field and the optional image.
// An empty body is not an error.
func (h *PostHandler) readPost(c *gin.Context) (*string, *media.Upload, bool) {
	var req dto.PostReq
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("post validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return nil, nil, false
	}

	image, err := platformhandler.ReadImage(c, imageField, h.maxUploadBytes)
	if err != nil {
		status, msg := platformhandler.UploadErrorStatus(err)
		slog.Warn("post image rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(status, api.ErrorResponse{Error: msg})
		return nil, nil, false
	}
	return req.Content, image, true
}

// Create handles POST /posts/create.
// - 201 with the author-enriched post on success
// - 400 when the image is not an image
// - 502 when the image could not be stored; no post is created
func (h *PostHandler) Create(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}

	content, image, ok := h.readPost(c)
	if !ok {
		return
	}

	view, err := h.posts.Create(c.Request.Context(), caller.ID, content, image)
	if err != nil {
		respondError(c, "create post", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPostRes(view))
}

// Edit handles PUT /posts/{id}/edit. Omitted fields are left unchanged.
// - 404 when the post does not exist
// - 403 when the caller does not own it
func (h *PostHandler) Edit(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	content, image, ok := h.readPost(c)
	if !ok {
		return
	}

	view, err := h.posts.Edit(c.Request.Context(), caller.ID, id, content, image)
	if err != nil {
		respondError(c, "edit post", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostRes(view))
}

// Delete handles DELETE /posts/{id}/delete.
func (h *PostHandler) Delete(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), caller.ID, id); err != nil {
		respondError(c, "delete post", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Post deleted"})
}

// ToggleLike handles PUT /posts/{id}/like.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	caller, ok := jwtmw.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}

	res, err := h.posts.ToggleLike(c.Request.Context(), caller.ID, id)
	if err != nil {
		respondError(c, "toggle like", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLikeRes(res))
}
