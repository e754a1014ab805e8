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
	"gorm.io/gorm"
)

func seedVideo(t *testing.T, db *gorm.DB, username, title string) *models.Video {
	t.Helper()

	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	var channel models.Channel
	require.NoError(t, db.Where("owner_id = ?", user.ID).First(&channel).Error)

	video := &models.Video{
		Title:        title,
		VideoURL:     "https://media.example.com/" + title + ".mp4",
		ThumbnailURL: "https://media.example.com/" + title + ".jpg",
		Visibility:   models.VisibilityPublic,
		Category:     models.CategoryOther,
		OwnerID:      user.ID,
		ChannelID:    channel.ID,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func TestListVideos_Pagination(t *testing.T) {
	app, _, db := newTestApp(t)
	registerUser(t, app, "alice")

	for i := 0; i < 5; i++ {
		seedVideo(t, db, "alice", fmt.Sprintf("clip-%d", i))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/?page=1&limit=2", nil)
	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
	assert.Equal(t, float64(1), data["current_page"])
	assert.Len(t, data["items"].([]interface{}), 2)

	t.Run("last page is short", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/?page=3&limit=2", nil)
		resp, body := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Len(t, data["items"].([]interface{}), 1)
	})

	t.Run("bad channelId filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/?channelId=abc", nil)
		resp, _ := doRequest(t, app, req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWatchVideo(t *testing.T) {
	app, _, db := newTestApp(t)
	access, _ := registerUser(t, app, "alice")
	video := seedVideo(t, db, "alice", "watch-me")

	path := fmt.Sprintf("/api/v1/videos/%d", video.ID)
	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["views"])

	t.Run("signed-in watch records history", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, _ := doRequest(t, app, authed(req, access))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil)
		resp, body := doRequest(t, app, authed(req, access))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["total"])
	})

	t.Run("bad id parameter", func(t *testing.T) {
		resp, _ := doRequest(t, app,
			httptest.NewRequest(http.MethodGet, "/api/v1/videos/abc", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing video", func(t *testing.T) {
		resp, _ := doRequest(t, app,
			httptest.NewRequest(http.MethodGet, "/api/v1/videos/9999", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPublishVideo_MediaUnavailable(t *testing.T) {
	app, _, _ := newTestApp(t)
	access, _ := registerUser(t, app, "alice")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/", nil)
	resp, body := doRequest(t, app, authed(req, access))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "MEDIA_UNAVAILABLE", body["code"])
}

func TestToggleVideoLike(t *testing.T) {
	app, _, db := newTestApp(t)
	registerUser(t, app, "alice")
	access, _ := registerUser(t, app, "bob")
	video := seedVideo(t, db, "alice", "likeable")

	path := fmt.Sprintf("/api/v1/videos/%d/like", video.ID)

	req := httptest.NewRequest(http.MethodPost, path, nil)
	resp, body := doRequest(t, app, authed(req, access))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["liked"])
	assert.Equal(t, "Video liked successfully", body["message"])

	req = httptest.NewRequest(http.MethodPost, path, nil)
	resp, body = doRequest(t, app, authed(req, access))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]interface{})["liked"])
	assert.Equal(t, "Video unliked successfully", body["message"])
}

func TestUpdateVideo_Ownership(t *testing.T) {
	app, _, db := newTestApp(t)
	registerUser(t, app, "alice")
	bobAccess, _ := registerUser(t, app, "bob")
	video := seedVideo(t, db, "alice", "mine")

	path := fmt.Sprintf("/api/v1/videos/%d", video.ID)
	req := jsonRequest(t, http.MethodPatch, path, fiber.Map{"title": "hijacked"})
	resp, _ := doRequest(t, app, authed(req, bobAccess))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVideoLikeStatus(t *testing.T) {
	app, _, db := newTestApp(t)
	registerUser(t, app, "alice")
	access, _ := registerUser(t, app, "bob")
	video := seedVideo(t, db, "alice", "likeable")

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/videos/%d/like", video.ID), nil)
	resp, _ := doRequest(t, app, authed(req, access))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	path := fmt.Sprintf("/api/v1/videos/%d/likes", video.ID)

	req = httptest.NewRequest(http.MethodGet, path, nil)
	resp, body := doRequest(t, app, authed(req, access))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["liked"])
	assert.Equal(t, float64(1), data["likes_count"])

	t.Run("anonymous viewer", func(t *testing.T) {
		resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, false, data["liked"])
		assert.Equal(t, float64(1), data["likes_count"])
	})
}

func TestUserVideos(t *testing.T) {
	app, _, db := newTestApp(t)
	registerUser(t, app, "alice")
	registerUser(t, app, "bob")
	seedVideo(t, db, "alice", "alice-clip")
	seedVideo(t, db, "bob", "bob-clip")

	var alice models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&alice).Error)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/videos/user/%d", alice.ID), nil)
	resp, body := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "alice-clip", items[0].(map[string]interface{})["title"])
}

func TestSubscriptionFeed(t *testing.T) {
	app, _, db := newTestApp(t)
	registerUser(t, app, "alice")
	bobAccess, _ := registerUser(t, app, "bob")
	seedVideo(t, db, "alice", "from-alice")

	var channel models.Channel
	require.NoError(t, db.Where("handle = ?", "alice").First(&channel).Error)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/channels/%d/subscribe", channel.ID), nil)
	resp, _ := doRequest(t, app, authed(req, bobAccess))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/videos/feed", nil)
	resp, body := doRequest(t, app, authed(req, bobAccess))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}
