package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
	}
}

// ToggleVideoLike likes a video, or removes an existing like. It returns
// whether the video is liked after the call. The video's denormalized like
// counter moves with the toggle.
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uint) (bool, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return false, err
	}

	existing, err := s.likeRepo.FindVideoLike(ctx, userID, videoID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		if err := s.videoRepo.AddLikes(ctx, videoID, -1); err != nil {
			return false, err
		}
		return false, nil
	}

	like := &models.Like{UserID: userID, VideoID: &videoID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return false, err
	}
	if err := s.videoRepo.AddLikes(ctx, videoID, 1); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleCommentLike likes a comment, or removes an existing like. Comment
// like counts are computed from rows, so no counter moves here.
func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return false, err
	}

	existing, err := s.likeRepo.FindCommentLike(ctx, userID, commentID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	like := &models.Like{UserID: userID, CommentID: &commentID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return false, err
	}
	return true, nil
}

// VideoLikeStatus reports a video's like count and whether the viewer
// has liked it. Anonymous viewers get the count with liked=false.
func (s *LikeService) VideoLikeStatus(ctx context.Context, viewerID, videoID uint) (bool, int64, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return false, 0, err
	}

	if viewerID == 0 {
		return false, video.LikesCount, nil
	}
	existing, err := s.likeRepo.FindVideoLike(ctx, viewerID, videoID)
	if err != nil {
		return false, 0, err
	}
	return existing != nil, video.LikesCount, nil
}

// LikedVideos pages through the videos a user has liked, most recently
// liked first.
func (s *LikeService) LikedVideos(ctx context.Context, userID uint, page, limit int) ([]models.Video, int64, error) {
	offset := (page - 1) * limit
	ids, total, err := s.likeRepo.LikedVideoIDs(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	videos, err := s.videoRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	// ListByIDs loses the like order; restore it.
	byID := make(map[uint]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]models.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, total, nil
}
