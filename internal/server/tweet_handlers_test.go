package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTweet(t *testing.T) {
	app, _, _ := newTestApp(t)
	access, _ := registerUser(t, app, "alice")

	req := jsonRequest(t, http.MethodPost, "/api/v1/tweets/", fiber.Map{
		"content": "shipping a new upload tonight",
	})
	resp, body := doRequest(t, app, authed(req, access))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "shipping a new upload tonight", data["content"])

	t.Run("anonymous rejected", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/v1/tweets/", fiber.Map{
			"content": "drive-by post",
		})
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListRecentTweets(t *testing.T) {
	app, _, _ := newTestApp(t)
	aliceAccess, _ := registerUser(t, app, "alice")
	bobAccess, _ := registerUser(t, app, "bob")

	for i, access := range []string{aliceAccess, bobAccess} {
		req := jsonRequest(t, http.MethodPost, "/api/v1/tweets/", fiber.Map{
			"content": fmt.Sprintf("post %d", i),
		})
		resp, _ := doRequest(t, app, authed(req, access))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doRequest(t, app,
		httptest.NewRequest(http.MethodGet, "/api/v1/tweets/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	items := data["items"].([]interface{})
	require.Len(t, items, 2)

	// Newest first, author preloaded.
	first := items[0].(map[string]interface{})
	assert.Equal(t, "post 1", first["content"])
	author := first["user"].(map[string]interface{})
	assert.Equal(t, "bob", author["username"])
}

func TestListUserTweets(t *testing.T) {
	app, _, db := newTestApp(t)
	access, _ := registerUser(t, app, "alice")
	registerUser(t, app, "bob")

	req := jsonRequest(t, http.MethodPost, "/api/v1/tweets/", fiber.Map{
		"content": "only mine",
	})
	resp, _ := doRequest(t, app, authed(req, access))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var alice, bob models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&alice).Error)
	require.NoError(t, db.Where("username = ?", "bob").First(&bob).Error)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/tweets/user/%d", alice.ID), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["total"])

	resp, body = doRequest(t, app, httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/tweets/user/%d", bob.ID), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["data"].(map[string]interface{})["total"])
}
