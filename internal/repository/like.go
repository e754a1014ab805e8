package repository

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes on videos and
// comments.
type LikeRepository interface {
	FindVideoLike(ctx context.Context, userID, videoID uint) (*models.Like, error)
	FindCommentLike(ctx context.Context, userID, commentID uint) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, id uint) error
	CountForComments(ctx context.Context, commentIDs []uint) (map[uint]int64, error)
	LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error)
	LikedVideoIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) FindVideoLike(ctx context.Context, userID, videoID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *likeRepository) FindCommentLike(ctx context.Context, userID, commentID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		// A concurrent double-toggle hits the unique index; treat the
		// like as already present.
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Like{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CountForComments returns like counts keyed by comment ID.
func (r *likeRepository) CountForComments(ctx context.Context, commentIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CommentID uint
		Count     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("comment_id, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, r := range rows {
		counts[r.CommentID] = r.Count
	}
	return counts, nil
}

// LikedCommentIDs reports which of the given comments the user has liked.
func (r *likeRepository) LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(commentIDs))
	if userID == 0 || len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// LikedVideoIDs pages through the IDs of videos a user has liked, most
// recently liked first.
func (r *likeRepository) LikedVideoIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND video_id IS NOT NULL", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ids []uint
	err := q.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ids, total, nil
}
