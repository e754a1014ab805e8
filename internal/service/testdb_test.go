package service

import (
	"testing"

	"vidtube/internal/database"
	"vidtube/internal/models"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Password: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestChannel(t *testing.T, db *gorm.DB, owner *models.User, handle string) *models.Channel {
	t.Helper()

	channel := &models.Channel{
		Name:     "Channel " + handle,
		Handle:   handle,
		OwnerID:  owner.ID,
		Category: models.CategoryOther,
	}
	require.NoError(t, db.Create(channel).Error)
	return channel
}

func createTestVideo(t *testing.T, db *gorm.DB, owner *models.User, channel *models.Channel, title string) *models.Video {
	t.Helper()

	video := &models.Video{
		Title:        title,
		Description:  "about " + title,
		VideoURL:     "https://media.example.com/" + title + ".mp4",
		ThumbnailURL: "https://media.example.com/" + title + ".jpg",
		Visibility:   models.VisibilityPublic,
		Category:     models.CategoryOther,
		OwnerID:      owner.ID,
		ChannelID:    channel.ID,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func newRepos(db *gorm.DB) (
	repository.UserRepository,
	repository.ChannelRepository,
	repository.VideoRepository,
	repository.CommentRepository,
	repository.LikeRepository,
	repository.SubscriptionRepository,
	repository.PlaylistRepository,
	repository.TweetRepository,
) {
	return repository.NewUserRepository(db),
		repository.NewChannelRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewLikeRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewPlaylistRepository(db),
		repository.NewTweetRepository(db)
}
