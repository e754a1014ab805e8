package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

type CreatePlaylistInput struct {
	OwnerID     uint
	Name        string
	Description string
	IsPublic    *bool
}

type UpdatePlaylistInput struct {
	OwnerID     uint
	PlaylistID  uint
	Name        string
	Description string
	IsPublic    *bool
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

const maxPlaylistNameLen = 100

func (s *PlaylistService) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Playlist name is required")
	}
	if len(in.Name) > maxPlaylistNameLen {
		return nil, models.NewValidationError("Playlist name too long (max 100 characters)")
	}

	playlist := &models.Playlist{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		IsPublic:    true,
	}
	if in.IsPublic != nil {
		playlist.IsPublic = *in.IsPublic
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// GetPlaylist fetches a playlist. Private playlists are served to their
// owner only.
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID, viewerID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !playlist.IsPublic && playlist.OwnerID != viewerID {
		return nil, models.NewNotFoundError("Playlist", playlistID)
	}
	return playlist, nil
}

// ListByOwner pages through a user's playlists. Other viewers see public
// playlists only.
func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID, viewerID uint, page, limit int) ([]models.Playlist, int64, error) {
	publicOnly := ownerID != viewerID
	offset := (page - 1) * limit
	return s.playlistRepo.ListByOwner(ctx, ownerID, publicOnly, limit, offset)
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, in.PlaylistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("You can only update your own playlists")
	}

	if in.Name != "" {
		if len(in.Name) > maxPlaylistNameLen {
			return nil, models.NewValidationError("Playlist name too long (max 100 characters)")
		}
		playlist.Name = in.Name
	}
	if in.Description != "" {
		playlist.Description = in.Description
	}
	if in.IsPublic != nil {
		playlist.IsPublic = *in.IsPublic
	}

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, ownerID, playlistID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != ownerID {
		return models.NewForbiddenError("You can only delete your own playlists")
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo appends a video to the caller's playlist. Private videos of
// other users cannot be added.
func (s *PlaylistService) AddVideo(ctx context.Context, ownerID, playlistID, videoID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != ownerID {
		return models.NewForbiddenError("You can only modify your own playlists")
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.Visibility == models.VisibilityPrivate && video.OwnerID != ownerID {
		return models.NewNotFoundError("Video", videoID)
	}

	return s.playlistRepo.AddVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, ownerID, playlistID, videoID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != ownerID {
		return models.NewForbiddenError("You can only modify your own playlists")
	}
	return s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
}

// Videos pages through a playlist's entries in position order.
func (s *PlaylistService) Videos(ctx context.Context, playlistID, viewerID uint, page, limit int) ([]models.PlaylistVideo, int64, error) {
	if _, err := s.GetPlaylist(ctx, playlistID, viewerID); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	return s.playlistRepo.ListVideos(ctx, playlistID, limit, offset)
}
