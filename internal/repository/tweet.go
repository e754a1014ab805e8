package repository

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for community tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Tweet, int64, error)
	ListRecent(ctx context.Context, limit, offset int) ([]models.Tweet, int64, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	err := r.db.WithContext(ctx).Preload("User").First(tweet, tweet.ID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.db.WithContext(ctx).Preload("User").First(&tweet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Tweet, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var tweets []models.Tweet
	err := q.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return tweets, total, nil
}

func (r *tweetRepository) ListRecent(ctx context.Context, limit, offset int) ([]models.Tweet, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Tweet{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var tweets []models.Tweet
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tweets).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return tweets, total, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Save(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tweet{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
