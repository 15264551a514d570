package models

import (
	"time"
)

// Post represents a user's post. AuthorName and AuthorAvatar are snapshots
// of the author taken at creation time and are never re-synced with later
// profile edits.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	Likes        []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments     []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}
