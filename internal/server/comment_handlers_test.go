package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentEndpoints(t *testing.T) {
	app, _, db := newTestApp(t)
	aliceAccess, _ := registerUser(t, app, "alice")
	bobAccess, _ := registerUser(t, app, "bob")
	video := seedVideo(t, db, "alice", "discussed")

	commentsPath := fmt.Sprintf("/api/v1/videos/%d/comments", video.ID)

	req := jsonRequest(t, http.MethodPost, commentsPath, fiber.Map{
		"content": "great video",
	})
	resp, body := doRequest(t, app, authed(req, bobAccess))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	commentID := uint(data["id"].(float64))
	assert.Equal(t, "bob", data["user"].(map[string]interface{})["username"])

	t.Run("anonymous comment rejected", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, commentsPath, fiber.Map{
			"content": "drive-by",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("reply shows up nested", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, commentsPath, fiber.Map{
			"content":   "thanks!",
			"parent_id": commentID,
		})
		resp, _ := doRequest(t, app, authed(req, aliceAccess))
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, body := doRequest(t, app,
			httptest.NewRequest(http.MethodGet, commentsPath, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		page := body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), page["total"])
		items := page["items"].([]interface{})
		require.Len(t, items, 1)
		replies := items[0].(map[string]interface{})["replies"].([]interface{})
		assert.Len(t, replies, 1)
	})

	t.Run("like toggles", func(t *testing.T) {
		likePath := fmt.Sprintf("/api/v1/comments/%d/like", commentID)

		req := httptest.NewRequest(http.MethodPost, likePath, nil)
		resp, body := doRequest(t, app, authed(req, aliceAccess))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["data"].(map[string]interface{})["liked"])
	})

	t.Run("author edits", func(t *testing.T) {
		editPath := fmt.Sprintf("/api/v1/comments/%d", commentID)

		req := jsonRequest(t, http.MethodPatch, editPath, fiber.Map{
			"content": "great video (edited)",
		})
		resp, _ := doRequest(t, app, authed(req, aliceAccess))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		req = jsonRequest(t, http.MethodPatch, editPath, fiber.Map{
			"content": "great video (edited)",
		})
		resp, body := doRequest(t, app, authed(req, bobAccess))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "great video (edited)",
			body["data"].(map[string]interface{})["content"])
	})

	t.Run("video owner deletes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete,
			fmt.Sprintf("/api/v1/comments/%d", commentID), nil)
		resp, _ := doRequest(t, app, authed(req, aliceAccess))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doRequest(t, app,
			httptest.NewRequest(http.MethodGet, commentsPath, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(0), body["data"].(map[string]interface{})["total"])
	})
}
