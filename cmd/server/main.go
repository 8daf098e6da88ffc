package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamestudio/website/internal/analytics"
	"gamestudio/website/internal/auth"
	"gamestudio/website/internal/config"
	"gamestudio/website/internal/content"
	"gamestudio/website/internal/database"
	"gamestudio/website/internal/dispatch"
	"gamestudio/website/internal/handler"
	"gamestudio/website/internal/hub"
	"gamestudio/website/internal/middleware"
	"gamestudio/website/internal/models"
	"gamestudio/website/internal/repository"
	"gamestudio/website/internal/site"
	"gamestudio/website/pkg/jwt"
	"gamestudio/website/pkg/logger"
	"gamestudio/website/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Swagger imports
	_ "gamestudio/website/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// @title           Studio Website API
// @version         1.0
// @description     Back office and tracking API for the studio website.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := openDatabase(ctx, cfg, zlog)
	defer func() {
		if err := database.Close(db); err != nil {
			zlog.Warn("close database", zap.Error(err))
		}
	}()
	repos := repository.New(db)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := repos.AdminUsers.EnsureBootstrap(ctx, cfg.AdminEmail, cfg.AdminPassword)
		switch {
		case err != nil:
			zlog.Warn("bootstrap admin skipped", zap.Error(err))
		case created:
			zlog.Info("bootstrap admin created", zap.String("email", cfg.AdminEmail))
		}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Tokens signed with a throwaway key do not survive a restart.
		secret = uuid.NewString() + uuid.NewString()
		zlog.Warn("JWT_SECRET not set, using a random signing key")
	}
	tokens := jwt.NewIssuer(secret, cfg.JWTTTL)

	api := handler.New(handler.Deps{
		Games:         repos.Games,
		News:          repos.News,
		Careers:       repos.Careers,
		Profiles:      repos.Profiles,
		Admins:        repos.AdminUsers,
		Analytics:     repos.Analytics,
		Tokens:        tokens,
		TokenTTL:      tokens.TTL(),
		Live:          hub.New[models.PageView](),
		SecureCookies: cfg.SecureCookies,
		Logger:        zlog,
	})

	sessions := analytics.NewSessions(repos.Analytics, db != nil,
		analytics.WithIdleTimeout(cfg.SessionIdleTimeout),
		analytics.WithMaxSessions(cfg.MaxSessions),
		analytics.WithSessionsLogger(zlog.Named("analytics")),
		analytics.WithPageViewPublisher(api.PublishPageView),
	)
	sessionsDone := make(chan struct{})
	go func() {
		defer close(sessionsDone)
		sessions.Run(ctx)
	}()

	queue := dispatch.NewQueue(cfg.AnalyticsQueueSize)
	pool := dispatch.NewPool(queue, cfg.AnalyticsWorkers, dispatch.WithLogger(zlog))
	pool.Start(ctx)

	web, err := site.New(site.Deps{
		Content:       content.NewCatalog(repos.Games, repos.News, repos.Careers, zlog),
		Sessions:      sessions,
		Queue:         queue,
		Tokens:        tokens,
		Studio:        cfg.StudioName,
		CareersEmail:  cfg.CareersEmail,
		PartnersEmail: cfg.PartnersEmail,
		SecureCookies: cfg.SecureCookies,
		Logger:        zlog,
	})
	if err != nil {
		zlog.Fatal("Failed to build site", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zlog), middleware.Metrics(), middleware.CORS(cfg.CORSAllowedOrigins))
	registerRoutes(router, api, web, tokens, repos.Profiles)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("Server is running", zap.String("addr", cfg.Addr),
			zap.Bool("backend_configured", db != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	if err := pool.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("dispatch shutdown", zap.Error(err))
	}
	select {
	case <-sessionsDone:
	case <-shutdownCtx.Done():
		zlog.Warn("sessions not flushed before shutdown timeout")
	}
}

// openDatabase connects when the backend is configured. Any failure leaves
// the site running on fallback content with analytics disabled.
func openDatabase(ctx context.Context, cfg *config.Config, zlog *zap.Logger) *gorm.DB {
	if !cfg.BackendConfigured() {
		zlog.Warn("backend not configured, serving fallback content")
		return nil
	}
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Error("backend unreachable, serving fallback content", zap.Error(err))
		return nil
	}
	return db
}

func registerRoutes(router *gin.Engine, h *handler.Handler, web *site.Site, tokens auth.TokenParser, profiles auth.ProfileLookup) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	web.Register(router)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		web.RegisterTracking(apiV1)

		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/login", h.LoginUser)
			authRoutes.POST("/logout", h.LogoutUser)
			authRoutes.GET("/me", auth.AuthMiddleware(tokens), h.GetMe)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(tokens), auth.AdminMiddleware(profiles))
		{
			games := adminRoutes.Group("/games")
			{
				games.GET("", h.GetGames)
				games.POST("", h.CreateGame)
				games.GET("/:id", h.GetGameByID)
				games.PUT("/:id", h.UpdateGame)
				games.PATCH("/:id/availability", h.SetGameAvailability)
				games.DELETE("/:id", h.DeleteGame)
			}

			news := adminRoutes.Group("/news")
			{
				news.GET("", h.GetNews)
				news.POST("", h.CreateNews)
				news.PUT("/:id", h.UpdateNews)
				news.PATCH("/:id/publish", h.PublishNews)
				news.DELETE("/:id", h.DeleteNews)
			}

			careers := adminRoutes.Group("/careers")
			{
				careers.GET("", h.GetCareers)
				careers.POST("", h.CreateCareer)
				careers.PUT("/:id", h.UpdateCareer)
				careers.POST("/:id/move", h.MoveCareer)
				careers.DELETE("/:id", h.DeleteCareer)
			}

			users := adminRoutes.Group("/users")
			{
				users.GET("", h.SearchUsers)
				users.PATCH("/:id/admin", h.SetUserAdmin)
			}

			stats := adminRoutes.Group("/analytics")
			{
				stats.GET("/summary", h.GetAnalyticsSummary)
				stats.GET("/page-views", h.GetRecentPageViews)
				stats.GET("/live", h.StreamPageViews)
			}
		}
	}
}
