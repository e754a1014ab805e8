package models

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	err := NewNotFoundError("Video", 42)
	assert.Equal(t, 404, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "Video with ID 42 not found", err.Message)

	t.Run("wrapped errors unwrap", func(t *testing.T) {
		cause := errors.New("disk full")
		internal := NewInternalError(cause)
		assert.ErrorIs(t, internal, cause)
		assert.Contains(t, internal.Error(), "disk full")
	})

	t.Run("statuses", func(t *testing.T) {
		assert.Equal(t, 400, NewValidationError("x").Status)
		assert.Equal(t, 401, NewUnauthorizedError("x").Status)
		assert.Equal(t, 403, NewForbiddenError("x").Status)
		assert.Equal(t, 409, NewConflictError("x").Status)
		assert.Equal(t, 500, NewInternalError(nil).Status)
	})
}

func TestRespondWithError_LogsInternalCause(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return RespondWithError(c, NewInternalError(errors.New("disk exploded")))
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return RespondWithError(c, NewForbiddenError("not yours"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	// The cause is logged but never serialized to the caller.
	assert.Contains(t, buf.String(), "disk exploded")
	assert.NotContains(t, string(body), "disk exploded")

	t.Run("client errors are not logged here", func(t *testing.T) {
		buf.Reset()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/forbidden", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Empty(t, buf.String())
	})
}
