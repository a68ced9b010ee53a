package model

import (
	"time"

	"github.com/google/uuid"

	authmodel "github.com/inkwell-app/inkwell/api-service/internal/domain/auth/model"
)

type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Excerpt   string
	Image     string
	Tags      []string `gorm:"serializer:json;type:jsonb"`
	AuthorID  uuid.UUID
	Author    authmodel.User `gorm:"foreignKey:AuthorID"`
	Likes     []Like         `gorm:"foreignKey:PostID"`
	Comments  []Comment      `gorm:"foreignKey:PostID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikedBy reports whether userID is among the post's likes.
func (p Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

type Like struct {
	PostID    uuid.UUID `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (Like) TableName() string { return "post_likes" }

type Comment struct {
	ID        uuid.UUID
	PostID    uuid.UUID
	UserID    uuid.UUID
	User      authmodel.User `gorm:"foreignKey:UserID"`
	Text      string
	CreatedAt time.Time
}

func (Comment) TableName() string { return "post_comments" }
