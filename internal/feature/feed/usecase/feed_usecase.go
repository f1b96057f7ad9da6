// Package usecase implements the feed read path: paginated, newest-first
// listings of posts joined with their authors at read time.
package usecase

import (
	"context"
	"fmt"
	"math"

	authentity "feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/post/domain/entity"
)

const (
	// DefaultPage is used when the page is absent or invalid.
	DefaultPage = 1
	// DefaultPageSize is used when the page size is absent or invalid.
	DefaultPageSize = 20
	// MaxPageSize caps the page size.
	MaxPageSize = 100
)

// PostReader is the read side of the posts table.
// Following Go convention, the interface is defined by the consumer (usecase).
type PostReader interface {
	// List returns posts ordered by creation time descending.
	List(ctx context.Context, offset, limit int) ([]entity.Post, error)

	// ListByOwner returns all posts of ownerID ordered by creation time descending.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Post, error)
}

// AuthorRepository resolves user IDs to author projections.
type AuthorRepository interface {
	FindAuthors(ctx context.Context, ids []uint) (map[uint]authentity.Author, error)
}

// Page is one page of the public feed.
type Page struct {
	Page     int
	PageSize int
	Posts    []entity.PostView
}

// feedUsecase assembles feed pages.
type feedUsecase struct {
	posts   PostReader
	authors AuthorRepository
}

// NewFeedUsecase creates a new feedUsecase.
func NewFeedUsecase(posts PostReader, authors AuthorRepository) *feedUsecase {
	return &feedUsecase{posts: posts, authors: authors}
}

// NormalizePage applies the defaults and the page size cap.
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ListAll returns one page of the feed. Paging is offset based, so pages can
// shift when posts are created or deleted between requests.
func (u *feedUsecase) ListAll(ctx context.Context, page, pageSize int) (*Page, error) {
	page, pageSize = NormalizePage(page, pageSize)
	if page-1 > math.MaxInt/pageSize {
		// The offset overflows, so the page lies past any stored post.
		return &Page{Page: page, PageSize: pageSize, Posts: []entity.PostView{}}, nil
	}

	posts, err := u.posts.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	views, err := u.Enrich(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &Page{Page: page, PageSize: pageSize, Posts: views}, nil
}

// ListByOwner returns all posts of ownerID, newest first, unpaginated.
func (u *feedUsecase) ListByOwner(ctx context.Context, ownerID uint) ([]entity.PostView, error) {
	posts, err := u.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return u.Enrich(ctx, posts)
}

// Enrich attaches the current author projection to each post, with one
// author lookup for the whole batch. Order is preserved.
func (u *feedUsecase) Enrich(ctx context.Context, posts []entity.Post) ([]entity.PostView, error) {
	views := make([]entity.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	seen := make(map[uint]struct{}, len(posts))
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}

	authors, err := u.authors.FindAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}

	for _, p := range posts {
		author, ok := authors[p.UserID]
		if !ok {
			author = authentity.Author{ID: p.UserID}
		}
		if p.Likes == nil {
			p.Likes = []uint{}
		}
		views = append(views, entity.PostView{Post: p, Author: author})
	}
	return views, nil
}
