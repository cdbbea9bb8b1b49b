package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "afterhourshvac/docs"
	"afterhourshvac/internal/analytics"
	"afterhourshvac/internal/caching"
	"afterhourshvac/internal/common"
	"afterhourshvac/internal/config"
	"afterhourshvac/internal/handlers"
	"afterhourshvac/internal/jobs/background"
	"afterhourshvac/internal/logging"
	"afterhourshvac/internal/metrics"
	"afterhourshvac/internal/middleware"
	"afterhourshvac/internal/repositories"
	"afterhourshvac/internal/services"
	"afterhourshvac/pkg/database"
)

const shutdownTimeout = 10 * time.Second

// @title After Hours HVAC API
// @version 1.0
// @description Bookings, checkout, careers, blog and team administration for After Hours HVAC.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.Logging, cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	if cfg.Database.RunMigrations {
		if err := database.Migrate(cfg.Database.URL, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}
	pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// Redis
	redisClient := caching.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	cacheSvc := caching.NewRedisCacheService(redisClient)
	if err := cacheSvc.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Address).Msg("redis not reachable at startup")
	}

	// Object storage
	minioSvc, err := services.NewMinioService(cfg.Minio)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MinIO service")
	}
	if err := minioSvc.EnsureBucketExists(ctx); err != nil {
		logger.Warn().Err(err).Str("bucket", cfg.Minio.Bucket).Msg("could not ensure storage bucket")
	}

	notifier, err := services.NewNotificationService(cfg.Telegram, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram notifications disabled")
		notifier = services.NopNotifier{}
	}
	gateway := services.NewStripeGateway(cfg.Stripe, cfg.HTTP.APIBaseURL)
	if cfg.Stripe.SecretKey == "" {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, checkout will be unavailable")
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	appRepo := repositories.NewJobApplicationRepo(pool)
	postRepo := repositories.NewBlogPostRepo(pool)
	teamRepo := repositories.NewTeamMemberRepo(pool)
	quoteRepo := repositories.NewQuoteRepo(pool)
	statsRepo := repositories.NewStatsRepo(pool)

	// Services
	validator := common.NewRequestValidator()
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Session)
	userSvc := services.NewUserService(userRepo, cacheSvc)
	bookingSvc := services.NewBookingService(bookingRepo, cacheSvc, gateway, notifier, cfg.Stripe.VerifySessions, logger)
	checkoutSvc := services.NewCheckoutService(gateway, cacheSvc, bookingSvc, validator, cfg.Business, logger)
	appSvc := services.NewApplicationService(appRepo, cacheSvc, minioSvc, notifier, logger)
	blogSvc := services.NewBlogService(postRepo, cacheSvc, logger)
	teamSvc := services.NewTeamService(teamRepo, cacheSvc, minioSvc, logger)
	quoteSvc := services.NewQuoteService(quoteRepo, cacheSvc, notifier, logger)
	analyticsSvc := analytics.NewAnalyticsService(statsRepo, cacheSvc, logger)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, cfg.Session, logger)
	userHandlers := handlers.NewUserHandlers(userSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc)
	checkoutHandlers := handlers.NewCheckoutHandlers(checkoutSvc)
	webhookHandlers := handlers.NewWebhookHandlers(gateway, bookingSvc, logger)
	appHandlers := handlers.NewApplicationHandlers(appSvc)
	blogHandlers := handlers.NewBlogHandlers(blogSvc)
	teamHandlers := handlers.NewTeamHandlers(teamSvc)
	quoteHandlers := handlers.NewQuoteHandlers(quoteSvc)
	statsHandlers := handlers.NewStatsHandlers(analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, cfg.App.Version)
	siteHandlers := handlers.NewSiteHandlers(blogSvc, teamSvc, checkoutSvc, appSvc, quoteSvc, cfg.Business, logger)

	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}

	// Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator
	e.Renderer = renderer
	e.HTTPErrorHandler = common.HTTPErrorHandler(logger)

	metrics.Register()
	session := middleware.NewSessionMiddleware(authSvc, cfg.Session, logger)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	limiter := rateLimiter.Middleware()
	uploadLimit := middleware.UploadLimit()
	requireAdmin := []echo.MiddlewareFunc{session.Required(), middleware.RequireAdmin()}

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
		ExposeHeaders:    []string{"X-Invalidate", middleware.VersionHeaderName},
	}))
	e.Use(middleware.VersionHeader(cfg.App.Version))
	e.Use(middleware.Visitor(cfg.Session.Secure))
	e.Use(session.Optional())

	// Health, metrics and docs (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public site
	e.GET("/", siteHandlers.Home)
	e.GET("/about", siteHandlers.About)
	e.GET("/blog", siteHandlers.Blog)
	e.GET("/blog/:slug", siteHandlers.BlogPost)
	e.GET("/services", siteHandlers.Services)
	e.POST("/book", siteHandlers.Book, limiter)
	e.GET("/booking/success", siteHandlers.BookingSuccess)
	e.GET("/booking/cancelled", siteHandlers.BookingCancelled)
	e.GET("/careers", siteHandlers.Careers)
	e.POST("/careers", siteHandlers.SubmitApplication, uploadLimit, limiter)
	e.GET("/quote", siteHandlers.Quote)
	e.POST("/quote", siteHandlers.SubmitQuote, limiter)

	api := e.Group("/api")

	// Authentication routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/logout", authHandlers.Logout)
	auth.GET("/me", authHandlers.Me)

	// Public API
	api.POST("/create-checkout-session", checkoutHandlers.CreateCheckoutSession, limiter)
	api.POST("/bookings", bookingHandlers.CreateBooking, limiter)
	api.POST("/job-applications", appHandlers.Submit, uploadLimit, limiter)
	api.POST("/quotes", quoteHandlers.Submit, limiter)
	api.GET("/blog/posts", blogHandlers.ListPublished)
	api.GET("/blog/posts/:slug", blogHandlers.GetBySlug)
	api.GET("/team", teamHandlers.ListActive)
	api.GET("/team/:id/photo", teamHandlers.Photo)
	api.POST("/webhooks/stripe", webhookHandlers.StripeWebhook)

	// Team writes live beside the public listing
	api.POST("/team", teamHandlers.CreateMember, requireAdmin...)
	api.PUT("/team/:id", teamHandlers.UpdateMember, requireAdmin...)
	api.DELETE("/team/:id", teamHandlers.DeleteMember, requireAdmin...)
	api.POST("/team/:id/photo", teamHandlers.UploadPhoto, append(requireAdmin, uploadLimit)...)

	// Admin routes (require a session with isAdmin)
	admin := api.Group("/admin", requireAdmin...)

	admin.GET("/bookings", bookingHandlers.ListBookings)
	admin.GET("/bookings/export", bookingHandlers.ExportBookings)
	admin.GET("/bookings/:id", bookingHandlers.GetBooking)
	admin.PUT("/bookings/:id", bookingHandlers.UpdateBooking)
	admin.DELETE("/bookings/:id", bookingHandlers.DeleteBooking)

	admin.GET("/users", userHandlers.ListUsers)
	admin.POST("/users", userHandlers.CreateUser)
	admin.GET("/users/:id", userHandlers.GetUser)
	admin.PUT("/users/:id", userHandlers.UpdateUser)
	admin.PUT("/users/:id/password", userHandlers.SetPassword)
	admin.DELETE("/users/:id", userHandlers.DeleteUser)

	admin.GET("/job-applications", appHandlers.List)
	admin.GET("/job-applications/:id", appHandlers.Get)
	admin.PUT("/job-applications/:id/status", appHandlers.UpdateStatus)
	admin.GET("/job-applications/:id/resume", appHandlers.Resume)
	admin.DELETE("/job-applications/:id", appHandlers.Delete)

	admin.GET("/blog/posts", blogHandlers.ListAll)
	admin.POST("/blog/posts", blogHandlers.CreatePost)
	admin.PUT("/blog/posts/:id", blogHandlers.UpdatePost)
	admin.DELETE("/blog/posts/:id", blogHandlers.DeletePost)

	admin.GET("/team", teamHandlers.ListAll)

	admin.GET("/quotes", quoteHandlers.List)
	admin.PUT("/quotes/:id/status", quoteHandlers.UpdateStatus)

	admin.GET("/stats", statsHandlers.Dashboard)

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc, blogSvc, teamSvc, rateLimiter, middleware.LimiterIdleTTL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	go func() {
		logger.Info().Str("addr", addr).Str("version", cfg.App.Version).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := scheduler.Stop(); err != nil {
		logger.Error().Err(err).Msg("scheduler shutdown failed")
	}
}
