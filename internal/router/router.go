package router

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"study-team-api/internal/auth"
	"study-team-api/internal/config"
	"study-team-api/internal/handler"
	"study-team-api/internal/imagegc"
	"study-team-api/internal/metrics"
	"study-team-api/internal/middleware"
	"study-team-api/internal/realtime"
	"study-team-api/internal/repository"
	"study-team-api/internal/service"
	"study-team-api/internal/storage"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Tokens         *auth.TokenManager
	Store          storage.Store
	Collector      *imagegc.Collector
	Hub            *realtime.Hub
	BasePath       string
	AllowedOrigins []string
	CookieName     string
	CookieSecure   bool
	Upload         config.UploadConfig
	UnreadCacheTTL time.Duration
	Admins         config.AdminConfig
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	healthHandler := handler.NewHealthHandler(cfg.Redis)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded images are served by the API itself only for the local backend
	if cfg.Upload.Backend != "s3" && cfg.Upload.Dir != "" && strings.HasPrefix(cfg.Upload.URLPrefix, "/") {
		r.Static(strings.TrimSuffix(cfg.Upload.URLPrefix, "/"), cfg.Upload.Dir)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	teamRepo := repository.NewTeamRepository(cfg.DB)
	postRepo := repository.NewPostRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	notificationRepo := repository.NewNotificationRepository(cfg.DB)

	// Optional collaborators stay as untyped nils so the services see them as absent
	var collector service.ImageCollector
	if cfg.Collector != nil {
		collector = cfg.Collector
	}
	var pusher service.Pusher
	var streamer handler.Streamer
	if cfg.Hub != nil {
		pusher = cfg.Hub
		streamer = cfg.Hub
	}

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, cfg.Redis, cfg.UnreadCacheTTL, pusher, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, postRepo, teamRepo, userRepo, notificationService, cfg.Metrics, cfg.Logger)
	postService := service.NewPostService(postRepo, teamRepo, userRepo, commentService, collector, cfg.Upload.ScopedWindow, cfg.Metrics, cfg.Logger)
	teamService := service.NewTeamService(teamRepo, postRepo, userRepo, collector, cfg.Logger)
	authService := service.NewAuthService(userRepo, cfg.Tokens, cfg.Logger)
	imageService := service.NewImageService(collector, userRepo, cfg.Admins, cfg.Upload.ScopedWindow, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   cfg.CookieName,
		MaxAge: int(cfg.Tokens.Expiration().Seconds()),
		Secure: cfg.CookieSecure,
	})
	teamHandler := handler.NewTeamHandler(teamService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	notificationHandler := handler.NewNotificationHandler(notificationService, streamer, cfg.AllowedOrigins, cfg.Logger)

	uploadService := service.NewUploadService(cfg.Store, cfg.Collector, cfg.Upload.MaxSize, cfg.Logger)
	uploadHandler := handler.NewUploadHandler(uploadService, imageService)

	// API routes group
	api := r.Group(cfg.BasePath)

	// Metrics and docs are also reachable behind the ingress base path
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMiddleware := middleware.Auth(cfg.Tokens, cfg.CookieName)

	// ============================================================
	// Auth routes
	// ============================================================
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", authMiddleware, authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		// ============================================================
		// Team routes
		// ============================================================
		teams := protected.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/:teamId", teamHandler.GetTeam)
			teams.DELETE("/:teamId", teamHandler.DeleteTeam)
			teams.POST("/:teamId/join", teamHandler.JoinTeam)
			teams.POST("/:teamId/leave", teamHandler.LeaveTeam)
			teams.POST("/:teamId/upvote", teamHandler.ToggleUpvote)
			teams.PUT("/:teamId/members/:userId/role", teamHandler.UpdateMemberRole)
			teams.POST("/:teamId/posts", postHandler.CreatePost)
		}

		// ============================================================
		// Post routes
		// ============================================================
		posts := protected.Group("/posts")
		{
			posts.GET("/:postId", postHandler.GetPost)
			posts.PUT("/:postId", postHandler.UpdatePost)
			posts.DELETE("/:postId", postHandler.DeletePost)
			posts.POST("/:postId/like", postHandler.ToggleLike)
			posts.GET("/:postId/comments", commentHandler.ListComments)
			posts.POST("/:postId/comments", commentHandler.AddComment)
			posts.POST("/:postId/comments/:commentId/replies", commentHandler.AddReply)
		}

		// ============================================================
		// Comment routes
		// ============================================================
		comments := protected.Group("/comments")
		{
			comments.PUT("/:commentId", commentHandler.UpdateComment)
			comments.DELETE("/:commentId", commentHandler.DeleteComment)
		}

		// ============================================================
		// Notification routes
		// ============================================================
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread_count", notificationHandler.GetUnreadCount)
			notifications.POST("/mark_read", notificationHandler.MarkRead)
			notifications.POST("/delete", notificationHandler.DeleteNotifications)
			notifications.GET("/ws", notificationHandler.Stream)
		}

		// ============================================================
		// Upload routes
		// ============================================================
		protected.POST("/uploads/images", uploadHandler.UploadImage)
		protected.POST("/admin/images/cleanup", uploadHandler.CleanupImages)
	}

	return r
}
