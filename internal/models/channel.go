package models

import "time"

// ChannelCategory classifies a channel's primary content.
type ChannelCategory string

const (
	CategoryGaming        ChannelCategory = "Gaming"
	CategoryMusic         ChannelCategory = "Music"
	CategorySports        ChannelCategory = "Sports"
	CategoryNews          ChannelCategory = "News"
	CategoryEntertainment ChannelCategory = "Entertainment"
	CategoryEducation     ChannelCategory = "Education"
	CategoryTechnology    ChannelCategory = "Technology"
	CategoryLifestyle     ChannelCategory = "Lifestyle"
	CategoryOther         ChannelCategory = "Other"
)

// ValidCategory reports whether c is one of the known channel categories.
func ValidCategory(c ChannelCategory) bool {
	switch c {
	case CategoryGaming, CategoryMusic, CategorySports, CategoryNews,
		CategoryEntertainment, CategoryEducation, CategoryTechnology,
		CategoryLifestyle, CategoryOther:
		return true
	}
	return false
}

// MaxChannelsPerUser caps how many channels a single user may own.
const MaxChannelsPerUser = 3

// Channel is a named publishing identity owned by a user. Every user gets
// one default channel at registration; videos are uploaded under a channel.
type Channel struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	Handle           string          `gorm:"unique;not null" json:"handle"`
	Description      string          `json:"description"`
	OwnerID          uint            `gorm:"not null;index" json:"owner_id"`
	Owner            User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Avatar           string          `json:"avatar"`
	Banner           string          `json:"banner"`
	SubscribersCount int64           `gorm:"not null;default:0;index" json:"subscribers_count"`
	VideosCount      int64           `gorm:"not null;default:0" json:"videos_count"`
	TotalViews       int64           `gorm:"not null;default:0" json:"total_views"`
	IsVerified       bool            `gorm:"not null;default:false" json:"is_verified"`
	IsDefault        bool            `gorm:"not null;default:false" json:"is_default"`
	Category         ChannelCategory `gorm:"type:varchar(20);default:'Other'" json:"category"`
	Website          string          `json:"website"`
	Twitter          string          `json:"twitter"`
	Instagram        string          `json:"instagram"`
	Facebook         string          `json:"facebook"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
