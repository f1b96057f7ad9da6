// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Email is used for authentication and must be unique across all users.
	// Comparison is case-sensitive.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Name is the display name shown next to the user's posts.
	Name string `gorm:"size:255;not null" json:"name"`

	// Password is the hashed secret. It never leaves the server.
	Password string `gorm:"size:255;not null" json:"-"`

	Headline  string `gorm:"size:255;not null;default:''" json:"headline"`
	Bio       string `gorm:"type:text;not null;default:''" json:"bio"`
	AvatarURL string `gorm:"size:1024;not null;default:''" json:"profilePic"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the profile was last updated.
	UpdatedAt time.Time `json:"-"`
}

// Author is the lightweight projection of a User attached to posts at read time.
type Author struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"profilePic"`
	Headline  string `json:"headline"`
}

// Author returns the author projection of u.
func (u *User) Author() Author {
	return Author{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Headline:  u.Headline,
	}
}

// ProfileUpdate carries a partial profile update.
// A nil field is left unchanged; a non-nil field is written as-is, including "".
type ProfileUpdate struct {
	Name *string
	Bio  *string
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil
}
