// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	media          media.Store

	userRepo     repository.UserRepository
	channelRepo  repository.ChannelRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	subRepo      repository.SubscriptionRepository
	playlistRepo repository.PlaylistRepository
	tweetRepo    repository.TweetRepository

	userService     *service.UserService
	channelService  *service.ChannelService
	videoService    *service.VideoService
	commentService  *service.CommentService
	likeService     *service.LikeService
	subService      *service.SubscriptionService
	playlistService *service.PlaylistService
	tweetService    *service.TweetService
}

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// promMetrics returns the process-wide HTTP metrics middleware. The
// underlying collectors register with the default Prometheus registry,
// which only tolerates a single registration.
func promMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New("vidtube-api")
	})
	return prom
}

// NewServer creates a server instance, establishing database, Redis and
// media storage connections.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	mediaStore, err := media.NewStore(context.Background(), cfg)
	if err != nil {
		// Media storage being down must not block startup; uploads will
		// fail with 503 until it recovers.
		middleware.Logger.Warn("Media storage unavailable", "error", err)
		mediaStore = nil
	}

	return NewServerWithDeps(cfg, db, redisClient, mediaStore)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mediaStore media.Store) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: promMetrics(),
		media:          mediaStore,
		userRepo:       repository.NewUserRepository(db),
		channelRepo:    repository.NewChannelRepository(db),
		videoRepo:      repository.NewVideoRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		subRepo:        repository.NewSubscriptionRepository(db),
		playlistRepo:   repository.NewPlaylistRepository(db),
		tweetRepo:      repository.NewTweetRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo)
	s.channelService = service.NewChannelService(s.channelRepo)
	s.videoService = service.NewVideoService(s.videoRepo, s.channelRepo, s.userRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo, s.likeRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.videoRepo, s.commentRepo)
	s.subService = service.NewSubscriptionService(s.subRepo, s.channelRepo)
	s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo)
	s.tweetService = service.NewTweetService(s.tweetRepo, s.userRepo)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limit per IP.
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, &models.AppError{
				Status:  fiber.StatusTooManyRequests,
				Code:    "RATE_LIMITED",
				Message: "Too many requests, please try again later",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")
	api.Get("/healthCheck", s.HealthCheck)

	// User account and session routes
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/refresh-token", s.RefreshToken)
	users.Post("/logout", s.AuthRequired(), s.Logout)
	users.Get("/current-user", s.AuthRequired(), s.CurrentUser)
	users.Post("/change-password", s.AuthRequired(), s.ChangePassword)
	users.Patch("/update-account", s.AuthRequired(), s.UpdateAccount)
	users.Patch("/avatar", s.AuthRequired(), s.UpdateAvatar)
	users.Patch("/cover-image", s.AuthRequired(), s.UpdateCoverImage)
	users.Get("/history", s.AuthRequired(), s.WatchHistory)

	// Video routes
	videos := api.Group("/videos")
	videos.Get("/", s.ListVideos)
	videos.Get("/feed", s.AuthRequired(), s.SubscriptionFeed)
	videos.Get("/liked", s.AuthRequired(), s.LikedVideos)
	videos.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "publish_video"), s.PublishVideo)
	videos.Get("/user/:userId", s.UserVideos)
	videos.Get("/:id/likes", s.VideoLikeStatus)
	videos.Get("/:id/comments", s.ListComments)
	videos.Post("/:id/comments", s.AuthRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.AddComment)
	videos.Post("/:id/like", s.AuthRequired(), s.ToggleVideoLike)
	videos.Get("/:id", s.WatchVideo)
	videos.Patch("/:id", s.AuthRequired(), s.UpdateVideo)
	videos.Delete("/:id", s.AuthRequired(), s.DeleteVideo)

	// Comment routes addressed by comment ID
	comments := api.Group("/comments", s.AuthRequired())
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)
	comments.Post("/:id/like", s.ToggleCommentLike)

	// Channel routes
	channels := api.Group("/channels")
	channels.Get("/me", s.AuthRequired(), s.MyChannels)
	channels.Post("/", s.AuthRequired(), s.CreateChannel)
	channels.Get("/:handle", s.GetChannel)
	channels.Get("/:handle/videos", s.ChannelVideos)
	channels.Patch("/:id", s.AuthRequired(), s.UpdateChannel)
	channels.Delete("/:id", s.AuthRequired(), s.DeleteChannel)
	channels.Patch("/:id/branding", s.AuthRequired(), s.UpdateChannelBranding)
	channels.Get("/:id/analytics", s.AuthRequired(), s.ChannelAnalytics)
	channels.Post("/:id/subscribe", s.AuthRequired(), s.Subscribe)
	channels.Delete("/:id/subscribe", s.AuthRequired(), s.Unsubscribe)
	channels.Get("/:id/subscribers", s.Subscribers)

	// Channels the current user subscribes to
	api.Get("/subscriptions", s.AuthRequired(), s.SubscribedChannels)

	// Search
	search := api.Group("/search")
	search.Get("/videos", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchVideos)
	search.Get("/channels", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchChannels)
	search.Get("/users", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchUsers)
	search.Get("/global", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.SearchGlobal)

	// Playlist routes
	playlists := api.Group("/playlists")
	playlists.Post("/", s.AuthRequired(), s.CreatePlaylist)
	playlists.Get("/user/:userId", s.ListUserPlaylists)
	playlists.Get("/:id/videos", s.PlaylistVideos)
	playlists.Post("/:id/videos/:videoId", s.AuthRequired(), s.AddPlaylistVideo)
	playlists.Delete("/:id/videos/:videoId", s.AuthRequired(), s.RemovePlaylistVideo)
	playlists.Get("/:id", s.GetPlaylist)
	playlists.Patch("/:id", s.AuthRequired(), s.UpdatePlaylist)
	playlists.Delete("/:id", s.AuthRequired(), s.DeletePlaylist)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Get("/", s.ListRecentTweets)
	tweets.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Get("/user/:userId", s.ListUserTweets)
	tweets.Patch("/:id", s.AuthRequired(), s.UpdateTweet)
	tweets.Delete("/:id", s.AuthRequired(), s.DeleteTweet)

	app.Use(func(c *fiber.Ctx) error {
		return models.RespondWithError(c, &models.AppError{
			Status:  fiber.StatusNotFound,
			Code:    "NOT_FOUND",
			Message: "Route not found",
		})
	})
}

// HealthCheck reports service health for the API prefix.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays up without Redis; caching and per-route limits
		// simply degrade.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "OK",
		"status":  overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the Fiber app and listens on the configured port.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "VidTube API",
		BodyLimit: 200 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
