// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered VidTube account.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	Email        string         `gorm:"unique;not null" json:"email"`
	FullName     string         `gorm:"not null" json:"fullname"`
	Password     string         `gorm:"not null" json:"-"`
	Avatar       string         `json:"avatar"`
	CoverImage   string         `json:"cover_image"`
	RefreshToken string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Channels []Channel `gorm:"foreignKey:OwnerID" json:"channels,omitempty"`
	Videos   []Video   `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
}

// WatchHistoryEntry records that a user watched a video. One row per
// (user, video); re-watching refreshes WatchedAt instead of inserting.
type WatchHistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_video_history" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_user_video_history" json:"video_id"`
	WatchedAt time.Time `gorm:"index" json:"watched_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video"`
}
