package server

import (
	"fmt"
	"strconv"
	"time"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "vidtube-api"
	tokenAudience = "vidtube-client"

	accessCookieName  = "accesstoken"
	refreshCookieName = "refreshtoken"
)

// generateToken signs an HS256 token for the user with the given secret
// and lifetime.
func (s *Server) generateToken(userID uint, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *Server) generateAccessToken(userID uint) (string, error) {
	return s.generateToken(userID, s.config.JWTAccessSecret, s.config.AccessTokenTTL)
}

func (s *Server) generateRefreshToken(userID uint) (string, error) {
	return s.generateToken(userID, s.config.JWTRefreshSecret, s.config.RefreshTokenTTL)
}

// parseToken validates a token against the secret and returns the user ID
// from the subject claim.
func (s *Server) parseToken(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}

// issueTokens mints a fresh access and refresh token pair and persists the
// refresh token on the user row so it can be rotated and revoked.
func (s *Server) issueTokens(c *fiber.Ctx, userID uint) (string, string, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return "", "", models.NewInternalError(err)
	}
	refresh, err := s.generateRefreshToken(userID)
	if err != nil {
		return "", "", models.NewInternalError(err)
	}
	if err := s.userRepo.UpdateRefreshToken(c.Context(), userID, refresh); err != nil {
		return "", "", err
	}

	s.setAuthCookies(c, access, refresh)
	return access, refresh, nil
}

// setAuthCookies stores both tokens as HTTP-only cookies. Production uses
// Secure cookies with SameSite=None for cross-site frontends; everything
// else stays on Lax so local HTTP works.
func (s *Server) setAuthCookies(c *fiber.Ctx, access, refresh string) {
	secure := s.config.IsProduction()
	sameSite := fiber.CookieSameSiteLaxMode
	if secure {
		sameSite = fiber.CookieSameSiteNoneMode
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    access,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  time.Now().Add(s.config.AccessTokenTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refresh,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  time.Now().Add(s.config.RefreshTokenTTL),
	})
}

func (s *Server) clearAuthCookies(c *fiber.Ctx) {
	secure := s.config.IsProduction()
	sameSite := fiber.CookieSameSiteLaxMode
	if secure {
		sameSite = fiber.CookieSameSiteNoneMode
	}

	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  expired,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  expired,
	})
}
