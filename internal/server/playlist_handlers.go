package server

import (
	"github.com/gofiber/fiber/v2"

	"vidtube/internal/models"
	"vidtube/internal/service"
)

// CreatePlaylist handles POST /api/v1/playlists.
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPublic    *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.CreatePlaylist(c.Context(), service.CreatePlaylistInput{
		OwnerID:     currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GetPlaylist handles GET /api/v1/playlists/:id.
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	playlist, err := s.playlistService.GetPlaylist(c.Context(), id, s.optionalUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// ListUserPlaylists handles GET /api/v1/playlists/user/:userId. Owners see
// their private playlists too.
func (s *Server) ListUserPlaylists(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	playlists, total, err := s.playlistService.ListByOwner(
		c.Context(), userID, s.optionalUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(playlists, total, page, limit), "Playlists fetched successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlists/:id.
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPublic    *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.playlistService.UpdatePlaylist(c.Context(), service.UpdatePlaylistInput{
		OwnerID:     currentUserID(c),
		PlaylistID:  id,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlists/:id.
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.playlistService.DeletePlaylist(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Playlist deleted successfully")
}

// AddPlaylistVideo handles POST /api/v1/playlists/:id/videos/:videoId.
func (s *Server) AddPlaylistVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.playlistService.AddVideo(c.Context(), currentUserID(c), id, videoID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, nil, "Video added to playlist successfully")
}

// RemovePlaylistVideo handles DELETE /api/v1/playlists/:id/videos/:videoId.
func (s *Server) RemovePlaylistVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.playlistService.RemoveVideo(c.Context(), currentUserID(c), id, videoID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Video removed from playlist successfully")
}

// PlaylistVideos handles GET /api/v1/playlists/:id/videos.
func (s *Server) PlaylistVideos(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	entries, total, err := s.playlistService.Videos(
		c.Context(), id, s.optionalUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(entries, total, page, limit), "Playlist videos fetched successfully")
}
