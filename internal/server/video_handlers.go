package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"vidtube/internal/models"
	"vidtube/internal/service"
)

// ListVideos handles GET /api/v1/videos with optional category, query,
// sortBy and channelId filters.
func (s *Server) ListVideos(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	in := service.ListVideosInput{
		Category: c.Query("category"),
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		ViewerID: s.optionalUserID(c),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("channelId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithError(c,
				models.NewValidationError("Invalid channelId parameter"))
		}
		in.ChannelID = uint(id)
	}

	videos, total, err := s.videoService.ListVideos(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(videos, total, page, limit), "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos. The video file and thumbnail
// arrive as multipart uploads alongside the metadata fields.
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	if s.media == nil {
		return models.RespondWithError(c, &models.AppError{
			Status:  fiber.StatusServiceUnavailable,
			Code:    "MEDIA_UNAVAILABLE",
			Message: "Media storage is unavailable",
		})
	}

	channelID, err := strconv.ParseUint(c.FormValue("channelId"), 10, 32)
	if err != nil || channelID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid channelId field"))
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("videoFile is required"))
	}
	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("thumbnail is required"))
	}

	videoURL, err := s.media.UploadFile(c.Context(), videoFile, "videos")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	thumbnailURL, err := s.media.UploadFile(c.Context(), thumbnail, "thumbnails")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	video, err := s.videoService.PublishVideo(c.Context(), service.PublishVideoInput{
		OwnerID:      currentUserID(c),
		ChannelID:    uint(channelID),
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		Visibility:   c.FormValue("visibility"),
		Category:     c.FormValue("category"),
		Tags:         c.FormValue("tags"),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// WatchVideo handles GET /api/v1/videos/:id. Fetching counts a view and
// records watch history for signed-in viewers.
func (s *Server) WatchVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	video, err := s.videoService.WatchVideo(c.Context(), id, s.optionalUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// UserVideos handles GET /api/v1/videos/user/:userId. Other viewers see
// the user's public videos; the user also sees their own hidden ones.
func (s *Server) UserVideos(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	videos, total, err := s.videoService.ListVideos(c.Context(), service.ListVideosInput{
		OwnerID:  userID,
		SortBy:   c.Query("sortBy"),
		ViewerID: s.optionalUserID(c),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(videos, total, page, limit), "Videos fetched successfully")
}

// VideoLikeStatus handles GET /api/v1/videos/:id/likes.
func (s *Server) VideoLikeStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	liked, count, err := s.likeService.VideoLikeStatus(c.Context(), s.optionalUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"liked":       liked,
		"likes_count": count,
	}, "Like status fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:id.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Visibility  string  `json:"visibility"`
		Category    string  `json:"category"`
		Tags        *string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	video, err := s.videoService.UpdateVideo(c.Context(), service.UpdateVideoInput{
		OwnerID:     currentUserID(c),
		VideoID:     id,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:id.
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.videoService.DeleteVideo(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Video deleted successfully")
}

// ToggleVideoLike handles POST /api/v1/videos/:id/like.
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	liked, err := s.likeService.ToggleVideoLike(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Video unliked successfully"
	if liked {
		message = "Video liked successfully"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"liked": liked}, message)
}

// LikedVideos handles GET /api/v1/videos/liked.
func (s *Server) LikedVideos(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	videos, total, err := s.likeService.LikedVideos(c.Context(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(videos, total, page, limit), "Liked videos fetched successfully")
}

// SubscriptionFeed handles GET /api/v1/videos/feed.
func (s *Server) SubscriptionFeed(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	videos, total, err := s.videoService.SubscriptionFeed(c.Context(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(videos, total, page, limit), "Subscription feed fetched successfully")
}
