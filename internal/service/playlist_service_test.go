package service

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistService_Visibility(t *testing.T) {
	db := newTestDB(t)
	_, _, videoRepo, _, _, _, playlistRepo, _ := newRepos(db)
	svc := NewPlaylistService(playlistRepo, videoRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	hidden := false
	private, err := svc.CreatePlaylist(ctx, CreatePlaylistInput{
		OwnerID: alice.ID, Name: "Watch later", IsPublic: &hidden,
	})
	require.NoError(t, err)
	_, err = svc.CreatePlaylist(ctx, CreatePlaylistInput{
		OwnerID: alice.ID, Name: "Favorites",
	})
	require.NoError(t, err)

	t.Run("private playlist looks missing to others", func(t *testing.T) {
		_, err := svc.GetPlaylist(ctx, private.ID, bob.ID)
		assertAppErrorStatus(t, err, 404)

		got, err := svc.GetPlaylist(ctx, private.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Watch later", got.Name)
	})

	t.Run("listings filter by viewer", func(t *testing.T) {
		_, total, err := svc.ListByOwner(ctx, alice.ID, alice.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		playlists, total, err := svc.ListByOwner(ctx, alice.ID, bob.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, playlists, 1)
		assert.Equal(t, "Favorites", playlists[0].Name)
	})
}

func TestPlaylistService_AddAndRemoveVideos(t *testing.T) {
	db := newTestDB(t)
	_, _, videoRepo, _, _, _, playlistRepo, _ := newRepos(db)
	svc := NewPlaylistService(playlistRepo, videoRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	channel := createTestChannel(t, db, alice, "alice-main")
	bobChannel := createTestChannel(t, db, bob, "bob-main")

	v1 := createTestVideo(t, db, alice, channel, "one")
	v2 := createTestVideo(t, db, alice, channel, "two")
	bobPrivate := createTestVideo(t, db, bob, bobChannel, "bob-secret")
	require.NoError(t, db.Model(bobPrivate).
		Update("visibility", models.VisibilityPrivate).Error)

	playlist, err := svc.CreatePlaylist(ctx, CreatePlaylistInput{
		OwnerID: alice.ID, Name: "Mixtape",
	})
	require.NoError(t, err)

	require.NoError(t, svc.AddVideo(ctx, alice.ID, playlist.ID, v1.ID))
	require.NoError(t, svc.AddVideo(ctx, alice.ID, playlist.ID, v2.ID))

	t.Run("duplicate add conflicts", func(t *testing.T) {
		err := svc.AddVideo(ctx, alice.ID, playlist.ID, v1.ID)
		assertAppErrorStatus(t, err, 409)
	})

	t.Run("someone else's playlist", func(t *testing.T) {
		err := svc.AddVideo(ctx, bob.ID, playlist.ID, v2.ID)
		assertAppErrorStatus(t, err, 403)
	})

	t.Run("another user's private video looks missing", func(t *testing.T) {
		err := svc.AddVideo(ctx, alice.ID, playlist.ID, bobPrivate.ID)
		assertAppErrorStatus(t, err, 404)
	})

	t.Run("entries keep insertion order", func(t *testing.T) {
		entries, total, err := svc.Videos(ctx, playlist.ID, alice.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, entries, 2)
		assert.Equal(t, v1.ID, entries[0].VideoID)
		assert.Equal(t, v2.ID, entries[1].VideoID)
		assert.Less(t, entries[0].Position, entries[1].Position)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, svc.RemoveVideo(ctx, alice.ID, playlist.ID, v1.ID))

		err := svc.RemoveVideo(ctx, alice.ID, playlist.ID, v1.ID)
		assertAppErrorStatus(t, err, 404)

		_, total, err := svc.Videos(ctx, playlist.ID, alice.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("delete clears entries", func(t *testing.T) {
		require.NoError(t, svc.DeletePlaylist(ctx, alice.ID, playlist.ID))

		var n int64
		require.NoError(t, db.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlist.ID).Count(&n).Error)
		assert.Equal(t, int64(0), n)
	})
}
