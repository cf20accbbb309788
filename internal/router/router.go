package router

import (
	"net/http"
	"time"

	commonmw "github.com/OrangesCloud/wealist-advanced-go-pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/cache"
	"community-feed-api/internal/client"
	"community-feed-api/internal/config"
	"community-feed-api/internal/handler"
	"community-feed-api/internal/metrics"
	"community-feed-api/internal/middleware"
	"community-feed-api/internal/repository"
	"community-feed-api/internal/service"
)

const serviceName = "community-feed"

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	AdminAPIKey    string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// Gatherer backs /metrics; the default registry when nil
	Gatherer  prometheus.Gatherer
	Storage   client.MediaStorage
	FeedCache cache.FeedCache
	Feed      config.FeedConfig
	Profile   config.ProfileConfig
	// Location is where the daily submission limit's calendar day starts
	Location *time.Location
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(commonmw.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint, also reachable under the base path behind ingress
	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.Gatherer != nil {
		metricsHandler = gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	r.GET("/metrics", metricsHandler)

	// Health check routes
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	}
	ready := func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName})
			return
		}
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
	}
	r.GET("/health", health)
	r.GET("/ready", ready)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", metricsHandler)
		api.GET("/health", health)
		api.GET("/ready", ready)
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	repos := repository.NewRepositories(cfg.DB)

	// Initialize services
	postService := service.NewPostService(repos, cfg.Storage, cfg.FeedCache, cfg.Metrics, cfg.Logger)
	userPostService := service.NewUserPostService(repos, cfg.Storage, cfg.FeedCache, cfg.Location, cfg.Metrics, cfg.Logger)
	interactionService := service.NewInteractionService(repos, cfg.Metrics, cfg.Logger)
	feedService := service.NewFeedService(repos, cfg.FeedCache, cfg.Storage, cfg.Feed, cfg.Metrics, cfg.Logger)
	profileService := service.NewProfileService(repos, cfg.Storage, cfg.Profile, cfg.Logger)

	// Initialize handlers
	feedHandler := handler.NewFeedHandler(feedService, cfg.Logger)
	postHandler := handler.NewPostHandler(postService, interactionService, cfg.Logger)
	userPostHandler := handler.NewUserPostHandler(userPostService, interactionService, cfg.Logger)
	profileHandler := handler.NewProfileHandler(profileService, cfg.Logger)
	adminHandler := handler.NewAdminHandler(postService, userPostService, cfg.Logger)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// ============================================================
	// Feed
	// ============================================================
	api.GET("/feed", optionalAuth, feedHandler.GetFeed)

	// ============================================================
	// Editorial posts
	// ============================================================
	posts := api.Group("/posts")
	{
		posts.GET("/:id", optionalAuth, postHandler.GetPostDetail)
		posts.POST("/:id/like", auth, postHandler.ToggleLike)
		posts.POST("/:id/comments", auth, postHandler.PostComment)
	}

	comments := api.Group("/comments")
	{
		comments.POST("/:id/like", auth, postHandler.ToggleCommentLike)
		comments.GET("/:id/replies", optionalAuth, postHandler.ListReplies)
	}

	// ============================================================
	// Community posts
	// ============================================================
	userPosts := api.Group("/user-posts")
	{
		userPosts.POST("", auth, userPostHandler.SubmitUserPost)
		userPosts.GET("/:id", optionalAuth, userPostHandler.GetUserPostDetail)
		userPosts.POST("/:id/like", auth, userPostHandler.ToggleLike)
		userPosts.POST("/:id/comments", auth, userPostHandler.PostComment)
	}

	userPostComments := api.Group("/user-post-comments")
	{
		userPostComments.POST("/:id/like", auth, userPostHandler.ToggleCommentLike)
		userPostComments.GET("/:id/replies", optionalAuth, userPostHandler.ListReplies)
	}

	// ============================================================
	// Profiles
	// ============================================================
	profiles := api.Group("/profiles")
	{
		profiles.GET("", profileHandler.ListProfiles)
		profiles.GET("/me", auth, profileHandler.GetMyProfile)
		profiles.PUT("/me", auth, profileHandler.UpdateMyProfile)
		profiles.GET("/:username", profileHandler.GetProfile)
	}

	// ============================================================
	// Administration (admin key)
	// ============================================================
	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.AdminAPIKey))
	{
		admin.GET("/user-posts/pending", adminHandler.ListPendingUserPosts)
		admin.POST("/user-posts/:id/approve", adminHandler.ApproveUserPost)
		admin.POST("/user-posts/:id/reject", adminHandler.RejectUserPost)
		admin.DELETE("/user-posts/:id", adminHandler.DeleteUserPost)

		admin.GET("/posts", adminHandler.ListPosts)
		admin.POST("/posts", adminHandler.CreatePost)
		admin.PUT("/posts/:id", adminHandler.UpdatePost)
		admin.POST("/posts/:id/publish", adminHandler.PublishPost)
		admin.POST("/posts/:id/unpublish", adminHandler.UnpublishPost)
		admin.POST("/posts/:id/cover", adminHandler.UploadCover)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)
	}

	return r
}
