package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a comment on a video. Top-level comments have a nil ParentID;
// replies carry the ID of the comment they answer. Only top-level comments
// are paginated in listings.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	VideoID   uint           `gorm:"not null;index" json:"video_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`
	Replies   []Comment      `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// LikesCount and Liked are computed per request, never persisted.
	LikesCount int64 `gorm:"-" json:"likes_count"`
	Liked      bool  `gorm:"-" json:"liked"`
}
