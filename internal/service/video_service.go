package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

type VideoService struct {
	videoRepo   repository.VideoRepository
	channelRepo repository.ChannelRepository
	userRepo    repository.UserRepository
}

type PublishVideoInput struct {
	OwnerID      uint
	ChannelID    uint
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Visibility   string
	Category     string
	Tags         string
}

type UpdateVideoInput struct {
	OwnerID      uint
	VideoID      uint
	Title        string
	Description  string
	ThumbnailURL string
	Visibility   string
	Category     string
	Tags         *string
}

type ListVideosInput struct {
	ChannelID uint
	OwnerID   uint
	Category  string
	Query     string
	SortBy    string
	ViewerID  uint
	Page      int
	Limit     int
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	channelRepo repository.ChannelRepository,
	userRepo repository.UserRepository,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		channelRepo: channelRepo,
		userRepo:    userRepo,
	}
}

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

// PublishVideo stores a new video under one of the caller's channels and
// bumps the channel video counter.
func (s *VideoService) PublishVideo(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}
	if in.VideoURL == "" {
		return nil, models.NewValidationError("Video file is required")
	}
	if in.ThumbnailURL == "" {
		return nil, models.NewValidationError("Thumbnail is required")
	}

	channel, err := s.channelRepo.GetByID(ctx, in.ChannelID)
	if err != nil {
		return nil, err
	}
	if channel.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("You can only upload to your own channels")
	}

	visibility := models.Visibility(in.Visibility)
	if in.Visibility == "" {
		visibility = models.VisibilityPublic
	} else if !models.ValidVisibility(visibility) {
		return nil, models.NewValidationError("Unknown visibility level")
	}

	category := models.ChannelCategory(in.Category)
	if in.Category == "" {
		category = channel.Category
	} else if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Unknown video category")
	}

	video := &models.Video{
		Title:        in.Title,
		Description:  in.Description,
		VideoURL:     in.VideoURL,
		ThumbnailURL: in.ThumbnailURL,
		Duration:     in.Duration,
		Visibility:   visibility,
		Category:     category,
		Tags:         models.ParseTags(in.Tags),
		OwnerID:      in.OwnerID,
		ChannelID:    in.ChannelID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	if err := s.channelRepo.AddVideos(ctx, in.ChannelID, 1); err != nil {
		return nil, err
	}
	return video, nil
}

// WatchVideo fetches a video for playback. Private videos are only served
// to their owner. A successful fetch counts a view, rolls it up into the
// channel total, and records watch history for signed-in viewers.
func (s *VideoService) WatchVideo(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Visibility == models.VisibilityPrivate && video.OwnerID != viewerID {
		return nil, models.NewNotFoundError("Video", videoID)
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	if err := s.channelRepo.AddViews(ctx, video.ChannelID, 1); err != nil {
		return nil, err
	}
	video.Views++

	if viewerID != 0 {
		if err := s.userRepo.RecordWatch(ctx, viewerID, videoID); err != nil {
			return nil, err
		}
	}
	return video, nil
}

// GetVideo fetches a video without counting a view. Private videos are only
// visible to their owner.
func (s *VideoService) GetVideo(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Visibility == models.VisibilityPrivate && video.OwnerID != viewerID {
		return nil, models.NewNotFoundError("Video", videoID)
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("You can only update your own videos")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		video.Title = in.Title
	}
	if in.Description != "" {
		if len(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 5000 characters)")
		}
		video.Description = in.Description
	}
	if in.ThumbnailURL != "" {
		video.ThumbnailURL = in.ThumbnailURL
	}
	if in.Visibility != "" {
		visibility := models.Visibility(in.Visibility)
		if !models.ValidVisibility(visibility) {
			return nil, models.NewValidationError("Unknown visibility level")
		}
		video.Visibility = visibility
	}
	if in.Category != "" {
		category := models.ChannelCategory(in.Category)
		if !models.ValidCategory(category) {
			return nil, models.NewValidationError("Unknown video category")
		}
		video.Category = category
	}
	if in.Tags != nil {
		video.Tags = models.ParseTags(*in.Tags)
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo removes a video with its likes, comments and playlist
// placements, and decrements the channel video counter.
func (s *VideoService) DeleteVideo(ctx context.Context, ownerID, videoID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.OwnerID != ownerID {
		return models.NewForbiddenError("You can only delete your own videos")
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}
	return s.channelRepo.AddVideos(ctx, video.ChannelID, -1)
}

func (s *VideoService) ListVideos(ctx context.Context, in ListVideosInput) ([]models.Video, int64, error) {
	filter := repository.VideoFilter{
		ChannelID:      in.ChannelID,
		OwnerID:        in.OwnerID,
		Query:          in.Query,
		SortBy:         in.SortBy,
		IncludeOwnerID: in.ViewerID,
	}
	if in.Category != "" {
		category := models.ChannelCategory(in.Category)
		if !models.ValidCategory(category) {
			return nil, 0, models.NewValidationError("Unknown video category")
		}
		filter.Category = category
	}
	// Viewers only see their own hidden videos when browsing a scope they
	// own; global listings stay public.
	if in.ChannelID == 0 && in.OwnerID == 0 {
		filter.IncludeOwnerID = 0
	}

	offset := (in.Page - 1) * in.Limit
	return s.videoRepo.List(ctx, filter, in.Limit, offset)
}

// ChannelAnalytics aggregates a channel's performance for its owner:
// counter snapshot, summed video stats, and the top videos by views.
type ChannelAnalytics struct {
	ChannelID        uint           `json:"channel_id"`
	SubscribersCount int64          `json:"subscribers_count"`
	Videos           int64          `json:"videos"`
	TotalViews       int64          `json:"total_views"`
	TotalLikes       int64          `json:"total_likes"`
	TopVideos        []models.Video `json:"top_videos"`
}

const analyticsTopVideos = 5

// Analytics computes channel analytics. Only the channel owner may see
// them.
func (s *VideoService) Analytics(ctx context.Context, ownerID, channelID uint) (*ChannelAnalytics, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel.OwnerID != ownerID {
		return nil, models.NewForbiddenError("You can only view analytics for your own channels")
	}

	agg, err := s.videoRepo.ChannelAggregates(ctx, channelID)
	if err != nil {
		return nil, err
	}

	top, _, err := s.videoRepo.List(ctx, repository.VideoFilter{
		ChannelID:      channelID,
		SortBy:         "views",
		IncludeOwnerID: ownerID,
	}, analyticsTopVideos, 0)
	if err != nil {
		return nil, err
	}

	return &ChannelAnalytics{
		ChannelID:        channelID,
		SubscribersCount: channel.SubscribersCount,
		Videos:           agg.Videos,
		TotalViews:       agg.Views,
		TotalLikes:       agg.Likes,
		TopVideos:        top,
	}, nil
}

// SubscriptionFeed lists recent public videos from channels the user
// subscribes to.
func (s *VideoService) SubscriptionFeed(ctx context.Context, userID uint, page, limit int) ([]models.Video, int64, error) {
	offset := (page - 1) * limit
	return s.videoRepo.FeedForSubscriber(ctx, userID, limit, offset)
}
