package server

import (
	"github.com/gofiber/fiber/v2"

	"vidtube/internal/models"
	"vidtube/internal/service"
)

// SearchVideos handles GET /api/v1/search/videos. Matching is a
// case-insensitive substring scan over title and description.
func (s *Server) SearchVideos(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return models.RespondWithError(c,
			models.NewValidationError("query parameter is required"))
	}

	page, limit := parsePagination(c)
	videos, total, err := s.videoService.ListVideos(c.Context(), service.ListVideosInput{
		Query:    query,
		Category: c.Query("category"),
		SortBy:   c.Query("sortBy"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(videos, total, page, limit), "Search results fetched successfully")
}

// SearchChannels handles GET /api/v1/search/channels, matching name and
// handle.
func (s *Server) SearchChannels(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return models.RespondWithError(c,
			models.NewValidationError("query parameter is required"))
	}

	page, limit := parsePagination(c)
	channels, total, err := s.channelRepo.Search(c.Context(), query, limit, (page-1)*limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(channels, total, page, limit), "Search results fetched successfully")
}

// SearchUsers handles GET /api/v1/search/users, matching username and
// full name.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return models.RespondWithError(c,
			models.NewValidationError("query parameter is required"))
	}

	page, limit := parsePagination(c)
	users, total, err := s.userRepo.Search(c.Context(), query, limit, (page-1)*limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(users, total, page, limit), "Search results fetched successfully")
}

// globalSearchLimit caps each per-type list in a global search result.
const globalSearchLimit = 5

// SearchGlobal handles GET /api/v1/search/global: one capped list per
// result type.
func (s *Server) SearchGlobal(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return models.RespondWithError(c,
			models.NewValidationError("query parameter is required"))
	}

	videos, _, err := s.videoService.ListVideos(c.Context(), service.ListVideosInput{
		Query: query,
		Page:  1,
		Limit: globalSearchLimit,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	channels, _, err := s.channelRepo.Search(c.Context(), query, globalSearchLimit, 0)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	users, _, err := s.userRepo.Search(c.Context(), query, globalSearchLimit, 0)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"videos":   videos,
		"channels": channels,
		"users":    users,
	}, "Search results fetched successfully")
}
