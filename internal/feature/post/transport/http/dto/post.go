package dto

import (
	"time"

	"feed_backend/internal/feature/post/domain/entity"
)

// PostReq represents the text part of POST /posts/create and PUT /posts/{id}/edit.
// A nil Content means the field was omitted.
type PostReq struct {
	Content *string `form:"content" json:"content"`
}

// AuthorRes is the author projection attached to every post.
type AuthorRes struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`
	Headline   string `json:"headline"`
}

// PostRes is the outward form of a post joined with its author.
type PostRes struct {
	ID        uint      `json:"id"`
	User      AuthorRes `json:"user"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Likes     []uint    `json:"likes"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikeRes is returned by PUT /posts/{id}/like. IsLiked and IsLikedNow carry
// the same post-toggle state under both client-facing names.
type LikeRes struct {
	LikeCount  int  `json:"likeCount"`
	IsLiked    bool `json:"isLiked"`
	IsLikedNow bool `json:"isLikedNow"`
}

// NewPostRes projects v for responses. Likes is never null.
func NewPostRes(v *entity.PostView) PostRes {
	likes := v.Likes
	if likes == nil {
		likes = []uint{}
	}
	return PostRes{
		ID: v.ID,
		User: AuthorRes{
			ID:         v.Author.ID,
			Name:       v.Author.Name,
			ProfilePic: v.Author.AvatarURL,
			Headline:   v.Author.Headline,
		},
		Content:   v.Content,
		Image:     v.ImageURL,
		Likes:     likes,
		LikeCount: len(likes),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// NewPostResList projects a slice of views. The result is never nil.
func NewPostResList(views []entity.PostView) []PostRes {
	out := make([]PostRes, 0, len(views))
	for i := range views {
		out = append(out, NewPostRes(&views[i]))
	}
	return out
}

// NewLikeRes projects a toggle result.
func NewLikeRes(r entity.LikeResult) LikeRes {
	return LikeRes{LikeCount: r.LikeCount, IsLiked: r.IsLiked, IsLikedNow: r.IsLiked}
}
