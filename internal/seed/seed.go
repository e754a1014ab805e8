// Package seed creates demo data for development databases. It is never
// invoked on a production profile.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"vidtube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users           int
	VideosPerUser   int
	CommentsPerUser int
	Password        string
}

// DefaultOptions returns a small data set suitable for local development.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		VideosPerUser:   4,
		CommentsPerUser: 6,
		Password:        "Password123",
	}
}

var categories = []models.ChannelCategory{
	models.CategoryGaming,
	models.CategoryMusic,
	models.CategorySports,
	models.CategoryNews,
	models.CategoryEntertainment,
	models.CategoryEducation,
	models.CategoryTechnology,
	models.CategoryLifestyle,
	models.CategoryOther,
}

// Run populates the database with fake users, channels, videos, comments,
// likes, subscriptions, playlists and tweets.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	var users []*models.User
	var channels []*models.Channel
	var videos []*models.Video

	for i := 0; i < opts.Users; i++ {
		username := strings.ToLower(gofakeit.Username())
		if len(username) < 3 {
			username = username + "xyz"
		}
		user := &models.User{
			Username: fmt.Sprintf("%s%d", username, i),
			Email:    fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			FullName: gofakeit.Name(),
			Password: string(hashed),
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)

		channel := &models.Channel{
			Name:        user.FullName,
			Handle:      user.Username,
			Description: gofakeit.Sentence(8),
			OwnerID:     user.ID,
			Category:    categories[r.Intn(len(categories))],
			IsDefault:   true,
		}
		if err := db.Create(channel).Error; err != nil {
			return fmt.Errorf("failed to seed channel: %w", err)
		}
		channels = append(channels, channel)
	}

	for i, user := range users {
		channel := channels[i]
		for j := 0; j < opts.VideosPerUser; j++ {
			created := time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour)
			video := &models.Video{
				Title:        gofakeit.Sentence(4),
				Description:  gofakeit.Paragraph(1, 3, 6, "\n"),
				VideoURL:     fmt.Sprintf("https://media.example.com/videos/%s.mp4", gofakeit.UUID()),
				ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s/640/360", gofakeit.UUID()),
				Duration:     float64(30 + r.Intn(1200)),
				Visibility:   models.VisibilityPublic,
				Category:     channel.Category,
				Tags:         models.Tags{gofakeit.Word(), gofakeit.Word()},
				OwnerID:      user.ID,
				ChannelID:    channel.ID,
				CreatedAt:    created,
			}
			if err := db.Create(video).Error; err != nil {
				return fmt.Errorf("failed to seed video: %w", err)
			}
			videos = append(videos, video)
		}
		if err := db.Model(channel).
			UpdateColumn("videos_count", opts.VideosPerUser).Error; err != nil {
			return err
		}
	}

	for _, user := range users {
		for j := 0; j < opts.CommentsPerUser; j++ {
			video := videos[r.Intn(len(videos))]
			comment := &models.Comment{
				Content: gofakeit.Sentence(10),
				VideoID: video.ID,
				UserID:  user.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
		}

		// Each user likes a handful of random videos.
		for _, idx := range r.Perm(len(videos))[:min(5, len(videos))] {
			video := videos[idx]
			if video.OwnerID == user.ID {
				continue
			}
			like := &models.Like{UserID: user.ID, VideoID: &video.ID}
			if err := db.Create(like).Error; err != nil {
				continue
			}
			db.Model(video).UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
		}

		// And subscribes to a couple of channels.
		for _, idx := range r.Perm(len(channels))[:min(3, len(channels))] {
			channel := channels[idx]
			if channel.OwnerID == user.ID {
				continue
			}
			sub := &models.Subscription{SubscriberID: user.ID, ChannelID: channel.ID}
			if err := db.Create(sub).Error; err != nil {
				continue
			}
			db.Model(channel).UpdateColumn("subscribers_count", gorm.Expr("subscribers_count + 1"))
		}

		tweet := &models.Tweet{Content: gofakeit.Sentence(12), UserID: user.ID}
		if err := db.Create(tweet).Error; err != nil {
			return fmt.Errorf("failed to seed tweet: %w", err)
		}

		playlist := &models.Playlist{
			Name:        gofakeit.HipsterWord() + " favorites",
			Description: gofakeit.Sentence(6),
			OwnerID:     user.ID,
			IsPublic:    true,
		}
		if err := db.Create(playlist).Error; err != nil {
			return fmt.Errorf("failed to seed playlist: %w", err)
		}
		for pos, idx := range r.Perm(len(videos))[:min(4, len(videos))] {
			entry := &models.PlaylistVideo{
				PlaylistID: playlist.ID,
				VideoID:    videos[idx].ID,
				Position:   pos + 1,
			}
			if err := db.Create(entry).Error; err != nil {
				continue
			}
		}
	}

	log.Printf("Seeded %d users, %d channels, %d videos", len(users), len(channels), len(videos))
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
