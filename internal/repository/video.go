package repository

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/observability"

	"gorm.io/gorm"
)

// VideoFilter narrows video listings. Zero values mean "no filter".
type VideoFilter struct {
	ChannelID uint
	OwnerID   uint
	Category  models.ChannelCategory
	Query     string
	SortBy    string
	// IncludeOwnerID widens visibility so an owner sees their own
	// unlisted and private videos in listings.
	IncludeOwnerID uint
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter VideoFilter, limit, offset int) ([]models.Video, int64, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Video, error)
	IncrementViews(ctx context.Context, id uint) error
	AddLikes(ctx context.Context, id uint, delta int) error
	FeedForSubscriber(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Video, int64, error)
	ChannelAggregates(ctx context.Context, channelID uint) (VideoAggregates, error)
}

// VideoAggregates rolls up a channel's video statistics.
type VideoAggregates struct {
	Videos int64 `json:"videos"`
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	key := cache.VideoKey(id)

	err := cache.Aside(ctx, key, &video, cache.VideoTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("Channel").
			Preload("Owner").
			First(&video, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Video", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, video.ID)
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

// List returns videos matching the filter. Anonymous listings see public
// videos only; IncludeOwnerID additionally exposes that owner's hidden
// videos to themselves.
func (r *videoRepository) List(ctx context.Context, filter VideoFilter, limit, offset int) ([]models.Video, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Video{})

	if filter.IncludeOwnerID != 0 {
		q = q.Where("visibility = ? OR owner_id = ?", models.VisibilityPublic, filter.IncludeOwnerID)
	} else {
		q = q.Where("visibility = ?", models.VisibilityPublic)
	}
	if filter.ChannelID != 0 {
		q = q.Where("channel_id = ?", filter.ChannelID)
	}
	if filter.OwnerID != 0 {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	order := "created_at DESC"
	switch filter.SortBy {
	case "views":
		order = "views DESC"
	case "likes":
		order = "likes_count DESC"
	case "oldest":
		order = "created_at ASC"
	}

	var videos []models.Video
	err := q.
		Preload("Channel").
		Order(order).
		Limit(limit).Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return videos, total, nil
}

func (r *videoRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Video, error) {
	if len(ids) == 0 {
		return []models.Video{}, nil
	}
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Preload("Channel").
		Where("id IN ?", ids).
		Find(&videos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	observability.VideoViewsTotal.Inc()
	cache.InvalidateVideo(ctx, id)
	return nil
}

// AddLikes applies an atomic delta to the denormalized like counter,
// flooring at zero.
func (r *videoRepository) AddLikes(ctx context.Context, id uint, delta int) error {
	var err error
	if delta >= 0 {
		err = r.db.WithContext(ctx).
			Model(&models.Video{}).
			Where("id = ?", id).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
	} else {
		err = r.db.WithContext(ctx).
			Model(&models.Video{}).
			Where("id = ?", id).
			UpdateColumn("likes_count", gorm.Expr(
				"CASE WHEN likes_count >= ? THEN likes_count - ? ELSE 0 END", -delta, -delta,
			)).Error
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

// ChannelAggregates sums views and likes over a channel's videos in a
// single scan.
func (r *videoRepository) ChannelAggregates(ctx context.Context, channelID uint) (VideoAggregates, error) {
	var agg VideoAggregates
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("COUNT(*) AS videos, COALESCE(SUM(views), 0) AS views, COALESCE(SUM(likes_count), 0) AS likes").
		Where("channel_id = ?", channelID).
		Scan(&agg).Error
	if err != nil {
		return VideoAggregates{}, models.NewInternalError(err)
	}
	return agg, nil
}

// FeedForSubscriber lists public videos from the channels a user
// subscribes to, newest first.
func (r *videoRepository) FeedForSubscriber(ctx context.Context, subscriberID uint, limit, offset int) ([]models.Video, int64, error) {
	sub := r.db.Model(&models.Subscription{}).
		Select("channel_id").
		Where("subscriber_id = ?", subscriberID)

	q := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("channel_id IN (?)", sub).
		Where("visibility = ?", models.VisibilityPublic)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var videos []models.Video
	err := q.
		Preload("Channel").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return videos, total, nil
}
