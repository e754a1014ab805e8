package models

import "time"

// Subscription links a subscriber to a channel. The pair is unique;
// creating and removing a subscription adjusts the channel's
// SubscribersCount counter.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"subscriber_id"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel;index" json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`

	Subscriber User    `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
