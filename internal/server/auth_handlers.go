package server

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/service"
	"vidtube/internal/validation"
)

// Register handles POST /api/v1/users/register. A default channel is
// provisioned for the new user; if that fails the account still exists.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"fullname"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.FullName == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Username, email, fullname, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByUsername(c.Context(), req.Username)
		if err != nil {
			return models.RespondWithError(c, err)
		}
	}
	if existing != nil {
		return models.RespondWithError(c,
			models.NewConflictError("User with this email or username already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	if _, err := s.channelService.CreateDefaultChannel(c.Context(), user); err != nil {
		middleware.Logger.WarnContext(c.UserContext(),
			"default channel creation failed", "user_id", user.ID, "error", err)
	}

	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// Login handles POST /api/v1/users/login. Either username or email
// identifies the account.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" && req.Email == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Username or email is required"))
	}

	var user *models.User
	var err error
	if req.Email != "" {
		user, err = s.userRepo.GetByEmail(c.Context(), req.Email)
	} else {
		user, err = s.userRepo.GetByUsername(c.Context(), req.Username)
	}
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, models.NewNotFoundError("User", req.Username+req.Email))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("Invalid password"))
	}

	access, refresh, err := s.issueTokens(c, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  access,
		"refreshToken": refresh,
	}, "User logged in successfully")
}

// Logout handles POST /api/v1/users/logout. The stored refresh token is
// cleared so it can never be replayed.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.userRepo.UpdateRefreshToken(c.Context(), userID, ""); err != nil {
		return models.RespondWithError(c, err)
	}

	s.clearAuthCookies(c)
	return models.Respond(c, fiber.StatusOK, nil, "User logged out successfully")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The incoming
// refresh token must match the one stored for the user; a successful
// refresh rotates both tokens.
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	tokenString := c.Cookies(refreshCookieName)
	if tokenString == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			tokenString = req.RefreshToken
		}
	}
	if tokenString == "" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Refresh token required"))
	}

	userID, err := s.parseToken(tokenString, s.config.JWTRefreshSecret)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid or expired token"))
	}
	if user.RefreshToken == "" || user.RefreshToken != tokenString {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Refresh token has been revoked"))
	}

	access, refresh, err := s.issueTokens(c, user.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"accessToken":  access,
		"refreshToken": refresh,
	}, "Tokens refreshed successfully")
}

// CurrentUser handles GET /api/v1/users/current-user.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// ChangePassword handles POST /api/v1/users/change-password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Old and new passwords are required"))
	}

	err := s.userService.ChangePassword(c.Context(), currentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Password changed successfully")
}

// UpdateAccount handles PATCH /api/v1/users/update-account.
func (s *Server) UpdateAccount(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullname"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.FullName == "" && req.Email == "" {
		return models.RespondWithError(c,
			models.NewValidationError("At least one of fullname or email is required"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Account updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar with a multipart file.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	return s.updateUserImage(c, "avatar")
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image with a
// multipart file.
func (s *Server) UpdateCoverImage(c *fiber.Ctx) error {
	return s.updateUserImage(c, "coverImage")
}

func (s *Server) updateUserImage(c *fiber.Ctx, field string) error {
	if s.media == nil {
		return models.RespondWithError(c, &models.AppError{
			Status:  fiber.StatusServiceUnavailable,
			Code:    "MEDIA_UNAVAILABLE",
			Message: "Media storage is unavailable",
		})
	}

	fh, err := c.FormFile(field)
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError(field+" file is required"))
	}

	url, err := s.media.UploadFile(c.Context(), fh, "images")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	var avatar, cover string
	message := "Avatar updated successfully"
	if field == "avatar" {
		avatar = url
	} else {
		cover = url
		message = "Cover image updated successfully"
	}

	user, err := s.userService.SetImages(c.Context(), currentUserID(c), avatar, cover)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, message)
}

// WatchHistory handles GET /api/v1/users/history.
func (s *Server) WatchHistory(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	entries, total, err := s.userService.WatchHistory(c.Context(), currentUserID(c), page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK,
		models.NewPage(entries, total, page, limit), "Watch history fetched successfully")
}
