package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ucspstream/streaming-api/internal/api/handler"
	"github.com/ucspstream/streaming-api/internal/api/middleware"
	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
	"github.com/ucspstream/streaming-api/internal/core/service"
	mongodb "github.com/ucspstream/streaming-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ucspstream/streaming-api/internal/infrastructure/db/redis"
)

// Options carries the externally supplied configuration the router needs.
// The signing secret and upload gateway are injected; nothing is read from
// globals.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Uploads   ports.UploadGateway
	StaticDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; listings then skip the cache.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ucspstream"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	contentRepo := mongodb.NewContentRepository(db)

	var cache ports.ListingCache
	if rdb != nil {
		cache = redisdb.NewListingCache(rdb)
	}

	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL)
	contentService := service.NewContentService(contentRepo, cache, opts.Logger)
	userService := service.NewUserService(userRepo, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	contentHandler := handler.NewContentHandler(contentService, opts.Uploads)
	userHandler := handler.NewUserHandler(userService, opts.Uploads)

	authRequired := middleware.Auth(authService)
	uploaderOnly := middleware.RBAC(domain.RoleArtist, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes (public) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Content routes ---
	content := e.Group("/api/content", authRequired)
	content.GET("", contentHandler.List)
	content.GET("/recommended", contentHandler.Recommended)
	content.GET("/recent", contentHandler.Recent)
	content.GET("/mine", contentHandler.Mine)
	content.POST("", contentHandler.Create, uploaderOnly)
	content.POST("/upload", contentHandler.Upload, uploaderOnly)

	// --- Profile routes ---
	users := e.Group("/api/users", authRequired)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.POST("/profile/picture", userHandler.UploadPicture)
	users.DELETE("/profile/picture", userHandler.DeletePicture)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, adminOnly)
	admin.GET("/content/pending", contentHandler.ListPending)
	admin.PUT("/content/:id/status", contentHandler.SetStatus)
	admin.GET("/users", userHandler.ListUsers)
	admin.PUT("/users/:id/status", userHandler.SetUserStatus)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static frontend ---
	if opts.StaticDir != "" {
		e.Static("/", opts.StaticDir)
	}

	return e
}
