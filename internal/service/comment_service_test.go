package service

import (
	"context"
	"strings"
	"testing"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	db := newTestDB(t)
	_, _, videoRepo, commentRepo, likeRepo, _, _, _ := newRepos(db)
	svc := NewCommentService(commentRepo, videoRepo, likeRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	channel := createTestChannel(t, db, alice, "alice-main")
	video := createTestVideo(t, db, alice, channel, "first")

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.AddComment(ctx, AddCommentInput{UserID: alice.ID, VideoID: video.ID})
		assertAppErrorStatus(t, err, 400)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := svc.AddComment(ctx, AddCommentInput{
			UserID:  alice.ID,
			VideoID: video.ID,
			Content: strings.Repeat("x", 2001),
		})
		assertAppErrorStatus(t, err, 400)
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := svc.AddComment(ctx, AddCommentInput{
			UserID: alice.ID, VideoID: 9999, Content: "hello",
		})
		assertAppErrorStatus(t, err, 404)
	})

	comment, err := svc.AddComment(ctx, AddCommentInput{
		UserID: alice.ID, VideoID: video.ID, Content: "first!",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.Username, comment.User.Username)

	t.Run("reply", func(t *testing.T) {
		reply, err := svc.AddComment(ctx, AddCommentInput{
			UserID: alice.ID, VideoID: video.ID, ParentID: &comment.ID, Content: "welcome",
		})
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, comment.ID, *reply.ParentID)

		t.Run("reply to a reply is rejected", func(t *testing.T) {
			_, err := svc.AddComment(ctx, AddCommentInput{
				UserID: alice.ID, VideoID: video.ID, ParentID: &reply.ID, Content: "nope",
			})
			assertAppErrorStatus(t, err, 400)
		})
	})

	t.Run("reply across videos is rejected", func(t *testing.T) {
		other := createTestVideo(t, db, alice, channel, "second")
		_, err := svc.AddComment(ctx, AddCommentInput{
			UserID: alice.ID, VideoID: other.ID, ParentID: &comment.ID, Content: "wrong place",
		})
		assertAppErrorStatus(t, err, 400)
	})
}

func TestCommentService_ListComments_Decoration(t *testing.T) {
	db := newTestDB(t)
	_, _, videoRepo, commentRepo, likeRepo, _, _, _ := newRepos(db)
	svc := NewCommentService(commentRepo, videoRepo, likeRepo)
	likeSvc := NewLikeService(likeRepo, videoRepo, commentRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	channel := createTestChannel(t, db, alice, "alice-main")
	video := createTestVideo(t, db, alice, channel, "first")

	comment, err := svc.AddComment(ctx, AddCommentInput{
		UserID: alice.ID, VideoID: video.ID, Content: "top level",
	})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, AddCommentInput{
		UserID: bob.ID, VideoID: video.ID, ParentID: &comment.ID, Content: "a reply",
	})
	require.NoError(t, err)

	_, err = likeSvc.ToggleCommentLike(ctx, bob.ID, comment.ID)
	require.NoError(t, err)

	comments, total, err := svc.ListComments(ctx, video.ID, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "only top-level comments are counted")
	require.Len(t, comments, 1)
	assert.Equal(t, int64(1), comments[0].LikesCount)
	assert.True(t, comments[0].Liked)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, int64(0), comments[0].Replies[0].LikesCount)

	// Anonymous viewers see counts but no like state.
	comments, _, err = svc.ListComments(ctx, video.ID, 0, 1, 10)
	require.NoError(t, err)
	assert.False(t, comments[0].Liked)
}

func TestCommentService_DeleteComment_Cascade(t *testing.T) {
	db := newTestDB(t)
	_, _, videoRepo, commentRepo, likeRepo, _, _, _ := newRepos(db)
	svc := NewCommentService(commentRepo, videoRepo, likeRepo)
	likeSvc := NewLikeService(likeRepo, videoRepo, commentRepo)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	mallory := createTestUser(t, db, "mallory")
	channel := createTestChannel(t, db, alice, "alice-main")
	video := createTestVideo(t, db, alice, channel, "first")

	comment, err := svc.AddComment(ctx, AddCommentInput{
		UserID: bob.ID, VideoID: video.ID, Content: "thread root",
	})
	require.NoError(t, err)
	for _, content := range []string{"reply one", "reply two"} {
		_, err := svc.AddComment(ctx, AddCommentInput{
			UserID: alice.ID, VideoID: video.ID, ParentID: &comment.ID, Content: content,
		})
		require.NoError(t, err)
	}
	_, err = likeSvc.ToggleCommentLike(ctx, alice.ID, comment.ID)
	require.NoError(t, err)

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := svc.DeleteComment(ctx, mallory.ID, comment.ID)
		assertAppErrorStatus(t, err, 403)
	})

	t.Run("video owner deletes the whole thread", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, alice.ID, comment.ID))

		var comments, likes int64
		require.NoError(t, db.Model(&models.Comment{}).
			Where("video_id = ?", video.ID).Count(&comments).Error)
		require.NoError(t, db.Model(&models.Like{}).
			Where("comment_id IS NOT NULL").Count(&likes).Error)
		assert.Equal(t, int64(0), comments)
		assert.Equal(t, int64(0), likes)
	})
}
