package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/feed/transport/http/dto"
	"feed_backend/internal/feature/feed/usecase"
	"feed_backend/internal/feature/post/domain/entity"
	jwtmw "feed_backend/internal/platform/jwt"
)

// mockFeedUsecase is a mock implementation of the FeedUsecase interface.
type mockFeedUsecase struct {
	ListAllFunc     func(ctx context.Context, page, pageSize int) (*usecase.Page, error)
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]entity.PostView, error)
}

func (m *mockFeedUsecase) ListAll(ctx context.Context, page, pageSize int) (*usecase.Page, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, page, pageSize)
	}
	p, s := usecase.NormalizePage(page, pageSize)
	return &usecase.Page{Page: p, PageSize: s}, nil
}

func (m *mockFeedUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.PostView, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func newRouter(h *FeedHandler, caller *authentity.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/posts/all", h.ListAll)
	mine := r.Group("/posts")
	if caller != nil {
		mine.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextIdentity, caller)
			c.Next()
		})
	}
	mine.GET("/profile", h.ListMine)
	return r
}

func TestFeedHandler_ListAll(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=2&pageSize=5", 2, 5},
		{"limit alias", "?page=3&limit=7", 3, 7},
		{"pageSize wins over limit", "?pageSize=4&limit=9", 1, 4},
		{"non-numeric falls back", "?page=abc&pageSize=x", 1, 20},
		{"capped", "?pageSize=1000", 1, usecase.MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(NewFeedHandler(&mockFeedUsecase{}), nil)

			req := httptest.NewRequest(http.MethodGet, "/posts/all"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var res dto.FeedRes
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.wantPage, res.Page)
			assert.Equal(t, tt.wantSize, res.PageSize)
			assert.NotNil(t, res.Posts, "posts must be an array, not null")
		})
	}

	t.Run("posts carry author and likes", func(t *testing.T) {
		mock := &mockFeedUsecase{ListAllFunc: func(ctx context.Context, page, pageSize int) (*usecase.Page, error) {
			return &usecase.Page{Page: 1, PageSize: 20, Posts: []entity.PostView{{
				Post:   entity.Post{ID: 1, UserID: 2, Content: "hi", Likes: []uint{2, 3}},
				Author: authentity.Author{ID: 2, Name: "Grace", AvatarURL: "http://a/p.png", Headline: "admiral"},
			}}}, nil
		}}
		r := newRouter(NewFeedHandler(mock), nil)

		req := httptest.NewRequest(http.MethodGet, "/posts/all", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res dto.FeedRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Posts, 1)
		assert.Equal(t, "Grace", res.Posts[0].User.Name)
		assert.Equal(t, "http://a/p.png", res.Posts[0].User.ProfilePic)
		assert.Equal(t, []uint{2, 3}, res.Posts[0].Likes)
		assert.Equal(t, 2, res.Posts[0].LikeCount)
	})

	t.Run("store failure", func(t *testing.T) {
		mock := &mockFeedUsecase{ListAllFunc: func(ctx context.Context, page, pageSize int) (*usecase.Page, error) {
			return nil, errors.New("db down")
		}}
		r := newRouter(NewFeedHandler(mock), nil)

		req := httptest.NewRequest(http.MethodGet, "/posts/all", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestFeedHandler_ListMine(t *testing.T) {
	t.Run("returns the caller's posts", func(t *testing.T) {
		mock := &mockFeedUsecase{ListByOwnerFunc: func(ctx context.Context, ownerID uint) ([]entity.PostView, error) {
			assert.Equal(t, uint(1), ownerID)
			return []entity.PostView{{Post: entity.Post{ID: 4, UserID: 1}}}, nil
		}}
		r := newRouter(NewFeedHandler(mock), &authentity.User{ID: 1})

		req := httptest.NewRequest(http.MethodGet, "/posts/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res, 1)
		assert.Equal(t, float64(4), res[0]["id"])
	})

	t.Run("empty list is an array", func(t *testing.T) {
		r := newRouter(NewFeedHandler(&mockFeedUsecase{}), &authentity.User{ID: 1})

		req := httptest.NewRequest(http.MethodGet, "/posts/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("no identity", func(t *testing.T) {
		r := newRouter(NewFeedHandler(&mockFeedUsecase{}), nil)

		req := httptest.NewRequest(http.MethodGet, "/posts/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
