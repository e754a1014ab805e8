package repository

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/cache"
	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChannelRepository defines persistence operations for channels.
type ChannelRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Channel, error)
	GetByHandle(ctx context.Context, handle string) (*models.Channel, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Channel, error)
	Create(ctx context.Context, channel *models.Channel) error
	Update(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, limit, offset int) ([]models.Channel, int64, error)
	AddSubscribers(ctx context.Context, id uint, delta int) error
	AddVideos(ctx context.Context, id uint, delta int) error
	AddViews(ctx context.Context, id uint, delta int64) error
}

type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository returns a new ChannelRepository implementation.
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) GetByID(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Channel", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &channel, nil
}

func (r *channelRepository) GetByHandle(ctx context.Context, handle string) (*models.Channel, error) {
	var channel models.Channel
	key := cache.ChannelKey(handle)

	err := cache.Aside(ctx, key, &channel, cache.ChannelTTL, func() error {
		if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&channel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Channel", handle)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Channel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *channelRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&channels).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return channels, nil
}

func (r *channelRepository) Create(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Create(channel).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Channel handle already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *channelRepository) Update(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Save(channel).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Channel handle already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateChannel(ctx, channel.Handle)
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, id uint) error {
	channel, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Channel{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateChannel(ctx, channel.Handle)
	return nil
}

// Search matches channels whose name or handle contains the query,
// case-insensitive, most subscribed first.
func (r *channelRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Channel, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	base := r.db.WithContext(ctx).
		Model(&models.Channel{}).
		Where("LOWER(name) LIKE ? OR LOWER(handle) LIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var channels []models.Channel
	err := base.
		Order("subscribers_count DESC").
		Limit(limit).Offset(offset).
		Find(&channels).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return channels, total, nil
}

// addCounter applies an atomic delta to a channel counter column, flooring
// the result at zero.
func (r *channelRepository) addCounter(ctx context.Context, id uint, column string, delta int64) error {
	var expr clause.Expr
	if delta >= 0 {
		expr = gorm.Expr(column+" + ?", delta)
	} else {
		expr = gorm.Expr("CASE WHEN "+column+" >= ? THEN "+column+" - ? ELSE 0 END", -delta, -delta)
	}
	err := r.db.WithContext(ctx).
		Model(&models.Channel{}).
		Where("id = ?", id).
		UpdateColumn(column, expr).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	var handle string
	if err := r.db.WithContext(ctx).Model(&models.Channel{}).Where("id = ?", id).Pluck("handle", &handle).Error; err == nil && handle != "" {
		cache.InvalidateChannel(ctx, handle)
	}
	return nil
}

func (r *channelRepository) AddSubscribers(ctx context.Context, id uint, delta int) error {
	return r.addCounter(ctx, id, "subscribers_count", int64(delta))
}

func (r *channelRepository) AddVideos(ctx context.Context, id uint, delta int) error {
	return r.addCounter(ctx, id, "videos_count", int64(delta))
}

func (r *channelRepository) AddViews(ctx context.Context, id uint, delta int64) error {
	return r.addCounter(ctx, id, "total_views", delta)
}
