// Package adapters provides repository implementations for the post feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	feedusecase "feed_backend/internal/feature/feed/usecase"
	"feed_backend/internal/feature/post/domain/entity"
	"feed_backend/internal/feature/post/usecase"
)

// postGorm is the gorm implementation of the post repositories.
type postGorm struct {
	db *gorm.DB
}

// Compile-time checks for both consumers of the posts table.
var (
	_ usecase.PostRepository = (*postGorm)(nil)
	_ feedusecase.PostReader = (*postGorm)(nil)
)

// NewPostRepository creates a new postGorm.
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// Create inserts the post.
func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	m := PostModelFromEntity(p)
	if err := r.db.WithContext(ctx).Omit("Likes").Create(m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	if p.Likes == nil {
		p.Likes = []uint{}
	}
	return nil
}

// findByID loads a post with its like set using db, which may be a transaction.
func findByID(db *gorm.DB, id uint) (*entity.Post, error) {
	var m PostModel
	if err := db.Preload("Likes").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindByID returns usecase.ErrPostNotFound when the post does not exist.
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	return findByID(r.db.WithContext(ctx), id)
}

// Update writes the non-nil fields of upd. The owner condition is part of the
// WHERE clause, so a post that changed hands or vanished is never written.
func (r *postGorm) Update(ctx context.Context, id, ownerID uint, upd entity.PostUpdate) (*entity.Post, error) {
	fields := map[string]any{}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}

	var out *entity.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&PostModel{}).Where("id = ? AND user_id = ?", id, ownerID).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return usecase.ErrPostNotFound
			}
		}
		p, err := findByID(tx, id)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the post and its like rows in one transaction.
func (r *postGorm) Delete(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&PostModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPostNotFound
		}
		return tx.Where("post_id = ?", id).Delete(&PostLikeModel{}).Error
	})
}

// ToggleLike flips userID's membership without reading the set back into memory:
// a conditional DELETE decides the direction and an INSERT ... ON CONFLICT DO
// NOTHING adds the member otherwise. The post row is locked FOR UPDATE first so
// toggles on one post run one at a time, including two by the same user.
func (r *postGorm) ToggleLike(ctx context.Context, postID, userID uint) (entity.LikeResult, error) {
	var out entity.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&PostModel{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", postID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return usecase.ErrPostNotFound
		}

		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostLikeModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := PostLikeModel{PostID: postID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			out.IsLiked = true
		}

		var count int64
		if err := tx.Model(&PostLikeModel{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		out.LikeCount = int(count)
		return nil
	})
	if err != nil {
		return entity.LikeResult{}, err
	}
	return out, nil
}

// toEntities converts loaded models.
func toEntities(models []PostModel) []entity.Post {
	out := make([]entity.Post, 0, len(models))
	for i := range models {
		out = append(out, *models[i].ToEntity())
	}
	return out
}

// List returns one page of posts, newest first. Ties on CreatedAt are broken
// by ID so that pages do not overlap.
func (r *postGorm) List(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var models []PostModel
	if err := r.db.WithContext(ctx).
		Preload("Likes").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// ListByOwner returns every post of ownerID, newest first.
func (r *postGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Post, error) {
	var models []PostModel
	if err := r.db.WithContext(ctx).
		Preload("Likes").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}
