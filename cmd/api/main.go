package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rentfolio/rentfolio-api/docs" // Swagger docs
	"github.com/rentfolio/rentfolio-api/internal/config"
	"github.com/rentfolio/rentfolio-api/internal/database"
	"github.com/rentfolio/rentfolio-api/internal/handlers"
	"github.com/rentfolio/rentfolio-api/internal/jobs"
	"github.com/rentfolio/rentfolio-api/internal/middleware"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/services"
	"github.com/rentfolio/rentfolio-api/internal/storage"
	"github.com/rentfolio/rentfolio-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Rentfolio API
// @version 1.0
// @description REST API for rental property investment scoring and financial reporting

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Warn if Resend email is not configured
	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		logger.Warn("Resend email disabled: RESEND_API_KEY or FROM_EMAIL not set. Set them in .env and ensure the From domain is verified in Resend dashboard.")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		logger.Info("Database schema up to date")
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store, cfg)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Redirect root to swagger
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		})

		// Swagger documentation
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Password recovery (public)
		v1.POST("/users/forgot_password", h.User.ForgotPassword)
		v1.POST("/users/reset_password", h.User.ResetPassword)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.PUT("/users/:user_id/toggle_status", h.User.ToggleStatus)
				admin.POST("/users/:user_id/restore", h.User.Restore)

				admin.DELETE("/properties/:property_id", h.Property.Delete)

				admin.GET("/audits", h.Audit.Index)
				admin.GET("/jobs/status", h.Job.Status)
			}

			// Manager + Admin routes (portfolio management)
			managerAdmin := protected.Group("")
			managerAdmin.Use(middleware.RequireRole("admin", "manager"))
			{
				managerAdmin.GET("/users", h.User.Index)

				// Properties and units
				managerAdmin.GET("/properties", h.Property.Index)
				managerAdmin.GET("/properties/:property_id", h.Property.Show)
				managerAdmin.POST("/properties", h.Property.Create)
				managerAdmin.PUT("/properties/:property_id", h.Property.Update)
				managerAdmin.POST("/properties/:property_id/transition", h.Property.Transition)
				managerAdmin.POST("/properties/:property_id/archive", h.Property.Archive)
				managerAdmin.POST("/properties/:property_id/unarchive", h.Property.Unarchive)
				managerAdmin.PUT("/units/:unit_id", h.Property.UpdateUnit)
				managerAdmin.POST("/units/:unit_id/status", h.Property.ChangeUnitStatus)

				// Transactions
				managerAdmin.GET("/transactions", h.Transaction.Index)
				managerAdmin.GET("/transactions/:transaction_id", h.Transaction.Show)
				managerAdmin.POST("/transactions", h.Transaction.Create)
				managerAdmin.PUT("/transactions/:transaction_id", h.Transaction.Update)
				managerAdmin.DELETE("/transactions/:transaction_id", h.Transaction.Delete)
				managerAdmin.POST("/transactions/:transaction_id/receipt", h.Transaction.UploadReceipt)
				managerAdmin.GET("/transactions/:transaction_id/receipt", h.Transaction.DownloadReceipt)

				// Scores
				managerAdmin.GET("/properties/:property_id/score", h.Score.Show)
				managerAdmin.POST("/scores/scan", h.Score.Scan)

				// Reports
				managerAdmin.GET("/reports/properties/:property_id", h.Report.PropertyReport)
				managerAdmin.GET("/reports/properties/:property_id/statement_pdf", h.Report.OwnerStatementPDF)
				managerAdmin.GET("/reports/portfolio", h.Report.PortfolioReport)
				managerAdmin.GET("/reports/portfolio_csv", h.Report.PortfolioCSV)
				managerAdmin.GET("/reports/export", h.Report.Export)
			}

			// User data access (admin or owner)
			protected.GET("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Show)
			protected.PUT("/users/:user_id", middleware.RequireAdminOrOwner(), h.User.Update)
			protected.PATCH("/users/:user_id/change_password", h.User.ChangePassword)
			protected.POST("/users/:user_id/resend_confirmation", h.User.ResendConfirmation)

			// Notifications (users can manage their own notifications)
			// Static route first so "mark_all_as_read" is not matched as :notification_id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/mark_all_as_read", h.Notification.MarkAllAsRead)
				notifications.POST("/:notification_id/mark_as_read", h.Notification.MarkAsRead)
				notifications.GET("/:notification_id", h.Notification.Show)
				notifications.DELETE("/:notification_id", h.Notification.Delete)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Nightly portfolio scan: recompute hold scores and flag weak rentals
	worker.ScheduleDaily(3, func(ctx context.Context) error {
		logger.Info("[Job] Scanning portfolio scores...")
		return svcs.Score.ScanPortfolio(ctx)
	})

	// Morning digest of vacant and behind-on-rent units
	worker.ScheduleDaily(7, func(ctx context.Context) error {
		logger.Info("[Job] Sending unit alert digests...")
		return svcs.Report.SendUnitAlertDigests(ctx, time.Now().UTC())
	})

	// Monthly P&L summary email, sent on the first day of the month
	worker.ScheduleMonthly(1, 8, func(ctx context.Context) error {
		logger.Info("[Job] Sending monthly summary emails...")
		return svcs.Report.SendMonthlySummaries(ctx, time.Now().UTC())
	})

	logger.Info("Scheduled recurring jobs")
}
