package models

import (
	"time"
)

// Comment represents a comment on a post. Author name/avatar are snapshots
// taken at creation time, like on Post.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;index" json:"post_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`
	Content      string    `gorm:"not null" json:"content"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
