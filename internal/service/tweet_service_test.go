package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetService_CRUD(t *testing.T) {
	db := newTestDB(t)
	userRepo, _, _, _, _, _, _, tweetRepo := newRepos(db)
	svc := NewTweetService(tweetRepo, userRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")

	t.Run("content limits", func(t *testing.T) {
		_, err := svc.CreateTweet(ctx, alice.ID, "")
		assertAppErrorStatus(t, err, 400)

		_, err = svc.CreateTweet(ctx, alice.ID, strings.Repeat("a", 281))
		assertAppErrorStatus(t, err, 400)
	})

	tweet, err := svc.CreateTweet(ctx, alice.ID, "hello world")
	require.NoError(t, err)
	assert.Equal(t, alice.Username, tweet.User.Username)

	t.Run("list by user", func(t *testing.T) {
		tweets, total, err := svc.ListByUser(ctx, alice.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tweets, 1)

		_, _, err = svc.ListByUser(ctx, 9999, 1, 10)
		assertAppErrorStatus(t, err, 404)
	})

	t.Run("ownership", func(t *testing.T) {
		_, err := svc.UpdateTweet(ctx, mallory.ID, tweet.ID, "hijacked")
		assertAppErrorStatus(t, err, 403)

		err = svc.DeleteTweet(ctx, mallory.ID, tweet.ID)
		assertAppErrorStatus(t, err, 403)
	})

	updated, err := svc.UpdateTweet(ctx, alice.ID, tweet.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.DeleteTweet(ctx, alice.ID, tweet.ID))
	_, err = svc.UpdateTweet(ctx, alice.ID, tweet.ID, "gone")
	assertAppErrorStatus(t, err, 404)
}
