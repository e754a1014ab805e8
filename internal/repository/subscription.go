package repository

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines persistence operations for channel
// subscriptions.
type SubscriptionRepository interface {
	Find(ctx context.Context, subscriberID, channelID uint) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id uint) error
	ListSubscribers(ctx context.Context, channelID uint, limit, offset int) ([]models.User, int64, error)
	ListChannels(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Channel, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already subscribed to this channel")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Subscription{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListSubscribers pages through the users subscribed to a channel, newest
// subscription first.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint, limit, offset int) ([]models.User, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&total).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err = r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

// ListChannels pages through the channels a user subscribes to, newest
// subscription first.
func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Channel, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&total).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var channels []models.Channel
	err = r.db.WithContext(ctx).
		Model(&models.Channel{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = channels.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&channels).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return channels, total, nil
}
