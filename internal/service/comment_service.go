package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	likeRepo    repository.LikeRepository
}

type AddCommentInput struct {
	UserID   uint
	VideoID  uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	likeRepo repository.LikeRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		likeRepo:    likeRepo,
	}
}

const maxCommentLen = 2000

// AddComment posts a comment on a video, or a reply when ParentID is set.
// Replies are single-level: replying to a reply is rejected.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.videoRepo.GetByID(ctx, in.VideoID); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.VideoID != in.VideoID {
			return nil, models.NewValidationError("Parent comment belongs to a different video")
		}
		if parent.ParentID != nil {
			return nil, models.NewValidationError("Cannot reply to a reply")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		VideoID:  in.VideoID,
		UserID:   in.UserID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments pages through a video's top-level comments with replies,
// decorating each comment with its like count and whether the viewer
// liked it.
func (s *CommentService) ListComments(ctx context.Context, videoID, viewerID uint, page, limit int) ([]models.Comment, int64, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var ids []uint
	for i := range comments {
		ids = append(ids, comments[i].ID)
		for j := range comments[i].Replies {
			ids = append(ids, comments[i].Replies[j].ID)
		}
	}

	counts, err := s.likeRepo.CountForComments(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	liked, err := s.likeRepo.LikedCommentIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	for i := range comments {
		comments[i].LikesCount = counts[comments[i].ID]
		comments[i].Liked = liked[comments[i].ID]
		for j := range comments[i].Replies {
			comments[i].Replies[j].LikesCount = counts[comments[i].Replies[j].ID]
			comments[i].Replies[j].Liked = liked[comments[i].Replies[j].ID]
		}
	}
	return comments, total, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment thread. The comment author and the owner
// of the video may delete; replies and likes go with it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		video, err := s.videoRepo.GetByID(ctx, comment.VideoID)
		if err != nil {
			return err
		}
		if video.OwnerID != userID {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	return s.commentRepo.DeleteWithReplies(ctx, commentID)
}
