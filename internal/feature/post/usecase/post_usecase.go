package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"feed_backend/internal/feature/post/domain/entity"
	"feed_backend/internal/platform/media"
)

// imageFolder is the media folder for post images.
const imageFolder = "posts"

// PostRepository abstracts the persistence layer for posts and their like sets.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (adapters).
type PostRepository interface {
	// Create inserts the post and fills its ID and CreatedAt.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID returns ErrPostNotFound when the post does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Update applies upd to the post only if ownerID owns it.
	// It returns ErrPostNotFound when no such owned post exists.
	Update(ctx context.Context, id, ownerID uint, upd entity.PostUpdate) (*entity.Post, error)

	// Delete removes the post and its likes only if ownerID owns it.
	Delete(ctx context.Context, id, ownerID uint) error

	// ToggleLike atomically adds userID to or removes it from the like set.
	ToggleLike(ctx context.Context, postID, userID uint) (entity.LikeResult, error)
}

// Enricher joins posts with their authors' current projections.
type Enricher interface {
	Enrich(ctx context.Context, posts []entity.Post) ([]entity.PostView, error)
}

// MediaStore stores uploaded bytes and returns a durable URL.
type MediaStore interface {
	Store(ctx context.Context, folder string, upload media.Upload) (string, error)
}

// postUsecase implements the post business rules.
type postUsecase struct {
	posts    PostRepository
	enricher Enricher
	media    MediaStore
}

// NewPostUsecase creates a new postUsecase.
func NewPostUsecase(posts PostRepository, enricher Enricher, store MediaStore) *postUsecase {
	return &postUsecase{
		posts:    posts,
		enricher: enricher,
		media:    store,
	}
}

// upload stores image and returns its URL.
func (u *postUsecase) upload(ctx context.Context, userID uint, image media.Upload) (string, error) {
	url, err := u.media.Store(ctx, imageFolder, image)
	if err != nil {
		slog.Warn("post image upload failed", "error", err, "user_id", userID)
		return "", fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}
	return url, nil
}

// view enriches a single post.
func (u *postUsecase) view(ctx context.Context, p *entity.Post) (*entity.PostView, error) {
	views, err := u.enricher.Enrich(ctx, []entity.Post{*p})
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}
	return &views[0], nil
}

// Create publishes a post owned by userID.
// A nil content is stored as "". The image, if any, is uploaded before the
// post is written so a failed upload leaves nothing behind.
func (u *postUsecase) Create(ctx context.Context, userID uint, content *string, image *media.Upload) (*entity.PostView, error) {
	p := &entity.Post{UserID: userID, Likes: []uint{}}
	if content != nil {
		p.Content = *content
	}
	if image != nil {
		url, err := u.upload(ctx, userID, *image)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := u.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	slog.Info("post created", "post_id", p.ID, "user_id", userID)
	return u.view(ctx, p)
}

// authorize loads the post and checks that userID owns it.
func (u *postUsecase) authorize(ctx context.Context, userID, postID uint) (*entity.Post, error) {
	p, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(userID) {
		slog.Warn("post ownership check failed", "post_id", postID, "user_id", userID, "owner_id", p.UserID)
		return nil, ErrForbidden
	}
	return p, nil
}

// Edit replaces the content and/or image of a post owned by userID.
// The previous image is not removed from the media store.
func (u *postUsecase) Edit(ctx context.Context, userID, postID uint, content *string, image *media.Upload) (*entity.PostView, error) {
	p, err := u.authorize(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	upd := entity.PostUpdate{Content: content}
	if image != nil {
		url, err := u.upload(ctx, userID, *image)
		if err != nil {
			return nil, err
		}
		upd.ImageURL = &url
	}
	if upd.IsEmpty() {
		return u.view(ctx, p)
	}

	updated, err := u.posts.Update(ctx, postID, userID, upd)
	if err != nil {
		return nil, err
	}
	slog.Info("post edited", "post_id", postID, "user_id", userID)
	return u.view(ctx, updated)
}

// Delete removes a post owned by userID.
func (u *postUsecase) Delete(ctx context.Context, userID, postID uint) error {
	if _, err := u.authorize(ctx, userID, postID); err != nil {
		return err
	}
	if err := u.posts.Delete(ctx, postID, userID); err != nil {
		return err
	}
	slog.Info("post deleted", "post_id", postID, "user_id", userID)
	return nil
}

// ToggleLike flips userID's membership in the post's like set.
func (u *postUsecase) ToggleLike(ctx context.Context, userID, postID uint) (entity.LikeResult, error) {
	return u.posts.ToggleLike(ctx, postID, userID)
}
