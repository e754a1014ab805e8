package server

import (
	"context"
	"strings"

	"vidtube/internal/middleware"
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the access token from the auth cookie or the
// Authorization header. The cookie wins; the header is kept for API
// clients that do not use cookies.
func bearerToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(accessCookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired returns the authentication middleware enforcing a valid
// access token and a still-existing user.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, err := s.parseToken(tokenString, s.config.JWTAccessSecret)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		// Reject tokens for deleted accounts.
		if _, err := s.userRepo.GetByID(c.Context(), userID); err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID extracts the user ID from a token when one is present but
// does not enforce authentication. Public endpoints use it to widen what a
// signed-in viewer sees.
func (s *Server) optionalUserID(c *fiber.Ctx) uint {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return 0
	}
	userID, err := s.parseToken(tokenString, s.config.JWTAccessSecret)
	if err != nil {
		return 0
	}
	return userID
}

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
