package server

import (
	"github.com/gofiber/fiber/v2"

	"vidtube/internal/models"
	"vidtube/internal/service"
)

// CreateChannel handles POST /api/v1/channels.
func (s *Server) CreateChannel(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Handle      string `json:"handle"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	channel, err := s.channelService.CreateChannel(c.Context(), service.CreateChannelInput{
		OwnerID:     currentUserID(c),
		Name:        req.Name,
		Handle:      req.Handle,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, channel, "Channel created successfully")
}

// GetChannel handles GET /api/v1/channels/:handle. The response includes
// whether the current viewer subscribes to it.
func (s *Server) GetChannel(c *fiber.Ctx) error {
	handle := c.Params("handle")
	channel, err := s.channelService.GetByHandle(c.Context(), handle)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	subscribed, err := s.subService.IsSubscribed(c.Context(), s.optionalUserID(c), channel.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"channel":       channel,
		"is_subscribed": subscribed,
	}, "Channel fetched successfully")
}

// ChannelVideos handles GET /api/v1/channels/:handle/videos.
func (s *Server) ChannelVideos(c *fiber.Ctx) error {
	handle := c.Params("handle")
	channel, err := s.channelService.GetByHandle(c.Context(), handle)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	videos, total, err := s.videoService.ListVideos(c.Context(), service.ListVideosInput{
		ChannelID: channel.ID,
		SortBy:    c.Query("sortBy"),
		ViewerID:  s.optionalUserID(c),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(videos, total, page, limit), "Channel videos fetched successfully")
}

// MyChannels handles GET /api/v1/channels/me.
func (s *Server) MyChannels(c *fiber.Ctx) error {
	channels, err := s.channelService.ListByOwner(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, channels, "Channels fetched successfully")
}

// UpdateChannel handles PATCH /api/v1/channels/:id.
func (s *Server) UpdateChannel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Website     string `json:"website"`
		Twitter     string `json:"twitter"`
		Instagram   string `json:"instagram"`
		Facebook    string `json:"facebook"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	channel, err := s.channelService.UpdateChannel(c.Context(), service.UpdateChannelInput{
		OwnerID:     currentUserID(c),
		ChannelID:   id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Website:     req.Website,
		Twitter:     req.Twitter,
		Instagram:   req.Instagram,
		Facebook:    req.Facebook,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, channel, "Channel updated successfully")
}

// DeleteChannel handles DELETE /api/v1/channels/:id.
func (s *Server) DeleteChannel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.channelService.DeleteChannel(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Channel deleted successfully")
}

// UpdateChannelBranding handles PATCH /api/v1/channels/:id/branding with
// multipart avatar and banner files.
func (s *Server) UpdateChannelBranding(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if s.media == nil {
		return models.RespondWithError(c, &models.AppError{
			Status:  fiber.StatusServiceUnavailable,
			Code:    "MEDIA_UNAVAILABLE",
			Message: "Media storage is unavailable",
		})
	}

	var avatarURL, bannerURL string
	if fh, err := c.FormFile("avatar"); err == nil {
		avatarURL, err = s.media.UploadFile(c.Context(), fh, "images")
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
	}
	if fh, err := c.FormFile("banner"); err == nil {
		bannerURL, err = s.media.UploadFile(c.Context(), fh, "images")
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
	}
	if avatarURL == "" && bannerURL == "" {
		return models.RespondWithError(c,
			models.NewValidationError("An avatar or banner file is required"))
	}

	channel, err := s.channelService.SetBranding(c.Context(), currentUserID(c), id, avatarURL, bannerURL)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, channel, "Channel branding updated successfully")
}

// ChannelAnalytics handles GET /api/v1/channels/:id/analytics.
func (s *Server) ChannelAnalytics(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	analytics, err := s.videoService.Analytics(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, analytics, "Channel analytics fetched successfully")
}

// Subscribe handles POST /api/v1/channels/:id/subscribe.
func (s *Server) Subscribe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	sub, err := s.subService.Subscribe(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, sub, "Subscribed successfully")
}

// Unsubscribe handles DELETE /api/v1/channels/:id/subscribe.
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.subService.Unsubscribe(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Unsubscribed successfully")
}

// Subscribers handles GET /api/v1/channels/:id/subscribers.
func (s *Server) Subscribers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	users, total, err := s.subService.Subscribers(c.Context(), id, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(users, total, page, limit), "Subscribers fetched successfully")
}

// SubscribedChannels handles GET /api/v1/subscriptions.
func (s *Server) SubscribedChannels(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	channels, total, err := s.subService.SubscribedChannels(c.Context(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(channels, total, page, limit), "Subscriptions fetched successfully")
}
