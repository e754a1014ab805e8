package server

import (
	"github.com/gofiber/fiber/v2"

	"vidtube/internal/models"
	"vidtube/internal/service"
)

// ListComments handles GET /api/v1/videos/:id/comments. The viewer's
// like state is included when a valid token is present.
func (s *Server) ListComments(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePagination(c)
	comments, total, err := s.commentService.ListComments(
		c.Context(), videoID, s.optionalUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(comments, total, page, limit), "Comments fetched successfully")
}

// AddComment handles POST /api/v1/videos/:id/comments.
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		UserID:   currentUserID(c),
		VideoID:  videoID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment handles PATCH /api/v1/comments/:id.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/:id.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.commentService.DeleteComment(c.Context(), currentUserID(c), commentID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Comment deleted successfully")
}

// ToggleCommentLike handles POST /api/v1/comments/:id/like.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	liked, err := s.likeService.ToggleCommentLike(c.Context(), currentUserID(c), commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Comment unliked successfully"
	if liked {
		message = "Comment liked successfully"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"liked": liked}, message)
}
