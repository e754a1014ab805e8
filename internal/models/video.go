package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Visibility controls who may list and watch a video.
type Visibility string

const (
	// VisibilityPublic videos appear in listings and search for everyone.
	VisibilityPublic Visibility = "public"
	// VisibilityUnlisted videos are watchable by direct link but never listed.
	VisibilityUnlisted Visibility = "unlisted"
	// VisibilityPrivate videos are visible to their owner only.
	VisibilityPrivate Visibility = "private"
)

// ValidVisibility reports whether v is a known visibility level.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

// Video represents an uploaded video belonging to a user and a channel.
type Video struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	VideoURL     string          `gorm:"not null" json:"video_url"`
	ThumbnailURL string          `gorm:"not null" json:"thumbnail_url"`
	Duration     float64         `gorm:"not null;default:0" json:"duration"`
	Views        int64           `gorm:"not null;default:0" json:"views"`
	LikesCount   int64           `gorm:"not null;default:0" json:"likes_count"`
	Visibility   Visibility      `gorm:"type:varchar(10);default:'public';index" json:"visibility"`
	Category     ChannelCategory `gorm:"type:varchar(20);default:'Other';index" json:"category"`
	Tags         Tags            `gorm:"serializer:json" json:"tags"`
	OwnerID      uint            `gorm:"not null;index" json:"owner_id"`
	Owner        User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	ChannelID    uint            `gorm:"not null;index" json:"channel_id"`
	Channel      Channel         `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Tags is a list of free-form video tags, stored as a JSON column.
type Tags []string

// ParseTags splits a comma-separated tag string into trimmed tags,
// dropping empties: "a, b" -> ["a", "b"].
func ParseTags(s string) Tags {
	if strings.TrimSpace(s) == "" {
		return Tags{}
	}
	parts := strings.Split(s, ",")
	tags := make(Tags, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
