package models

import "time"

// Like records a user liking a video or a comment. Exactly one of VideoID
// and CommentID is set. The (user, target) pair is unique; a second like
// request for the same target toggles the like off.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_video_like;uniqueIndex:idx_user_comment_like" json:"user_id"`
	VideoID   *uint     `gorm:"uniqueIndex:idx_user_video_like" json:"video_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_user_comment_like" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
