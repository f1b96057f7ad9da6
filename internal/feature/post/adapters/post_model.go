package adapters

import (
	"sort"
	"time"

	"feed_backend/internal/feature/post/domain/entity"
)

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Content   string          `gorm:"type:text;not null;default:''"`
	ImageURL  string          `gorm:"size:1024;not null;default:''"`
	CreatedAt time.Time       `gorm:"index;not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	Likes     []PostLikeModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// PostLikeModel is one member of a post's like set.
// The composite primary key makes membership unique.
type PostLikeModel struct {
	PostID    uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (PostLikeModel) TableName() string {
	return "post_likes"
}

// ToEntity converts the GORM model to a domain entity.
func (m *PostModel) ToEntity() *entity.Post {
	likes := make([]uint, 0, len(m.Likes))
	for _, l := range m.Likes {
		likes = append(likes, l.UserID)
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i] < likes[j] })

	return &entity.Post{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		Likes:     likes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PostModelFromEntity converts a domain entity to a GORM model. Likes are not copied;
// they are written only through ToggleLike.
func PostModelFromEntity(p *entity.Post) *PostModel {
	return &PostModel{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
