// Package entity defines the domain entities for the post feature.
package entity

import (
	"slices"
	"time"

	authentity "feed_backend/internal/feature/auth/domain/entity"
)

// Post is a short text post with an optional image.
// UserID and CreatedAt never change after creation.
type Post struct {
	ID       uint
	UserID   uint
	Content  string
	ImageURL string
	// Likes is the set of user IDs that like the post, in ascending order.
	Likes     []uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikeCount returns the number of users that like the post.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID uint) bool {
	_, found := slices.BinarySearch(p.Likes, userID)
	return found
}

// OwnedBy reports whether userID owns the post.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID == userID
}

// PostUpdate carries an edit. Nil fields are left unchanged.
type PostUpdate struct {
	Content  *string
	ImageURL *string
}

// IsEmpty reports whether the update changes nothing.
func (u PostUpdate) IsEmpty() bool {
	return u.Content == nil && u.ImageURL == nil
}

// LikeResult is the state of a like set right after a toggle.
type LikeResult struct {
	LikeCount int
	IsLiked   bool
}

// PostView is a post joined with its author's current projection.
type PostView struct {
	Post
	Author authentity.Author
}
