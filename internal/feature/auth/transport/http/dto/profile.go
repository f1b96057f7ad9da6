package dto

import (
	"time"

	"feed_backend/internal/feature/auth/domain/entity"
)

// UpdateProfileReq represents the body of PUT /auth/profile.
// Omitted fields are left unchanged.
type UpdateProfileReq struct {
	Name *string `form:"name" json:"name"`
	Bio  *string `form:"bio" json:"bio"`
}

// UserRes is the outward projection of a user. It never carries the password hash.
type UserRes struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Headline   string    `json:"headline"`
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthRes is returned by signup and login.
type AuthRes struct {
	User  UserRes `json:"user"`
	Token string  `json:"token"`
}

// ProfileRes wraps the caller's profile.
type ProfileRes struct {
	User UserRes `json:"user"`
}

// NewUserRes projects u for responses.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Headline:   u.Headline,
		Bio:        u.Bio,
		ProfilePic: u.AvatarURL,
		CreatedAt:  u.CreatedAt,
	}
}
