package server

import (
	"github.com/gofiber/fiber/v2"

	"vidtube/internal/models"
)

// CreateTweet handles POST /api/v1/tweets.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.CreateTweet(c.Context(), currentUserID(c), req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// ListRecentTweets handles GET /api/v1/tweets, the community feed.
func (s *Server) ListRecentTweets(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	tweets, total, err := s.tweetService.ListRecent(c.Context(), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(tweets, total, page, limit), "Tweets fetched successfully")
}

// ListUserTweets handles GET /api/v1/tweets/user/:userId.
func (s *Server) ListUserTweets(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	tweets, total, err := s.tweetService.ListByUser(c.Context(), userID, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(tweets, total, page, limit), "Tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:id.
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.UpdateTweet(c.Context(), currentUserID(c), id, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:id.
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.tweetService.DeleteTweet(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Tweet deleted successfully")
}
