package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

const maxTweetLen = 280

func (s *TweetService) CreateTweet(ctx context.Context, userID uint, content string) (*models.Tweet, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet too long (max 280 characters)")
	}

	tweet := &models.Tweet{Content: content, UserID: userID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.Tweet, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	return s.tweetRepo.ListByUser(ctx, userID, limit, offset)
}

// ListRecent pages through the community feed, newest first.
func (s *TweetService) ListRecent(ctx context.Context, page, limit int) ([]models.Tweet, int64, error) {
	offset := (page - 1) * limit
	return s.tweetRepo.ListRecent(ctx, limit, offset)
}

func (s *TweetService) UpdateTweet(ctx context.Context, userID, tweetID uint, content string) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.UserID != userID {
		return nil, models.NewForbiddenError("You can only update your own tweets")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet too long (max 280 characters)")
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, userID, tweetID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != userID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}
