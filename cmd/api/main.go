package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brijnamkeen/store_api/internal/cache"
	"github.com/brijnamkeen/store_api/internal/config"
	"github.com/brijnamkeen/store_api/internal/database"
	"github.com/brijnamkeen/store_api/internal/handler"
	"github.com/brijnamkeen/store_api/internal/middleware"
	"github.com/brijnamkeen/store_api/internal/repository"
	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// main is the application entrypoint for the store API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting store api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	homeCache := cache.NewHomeCache(redisClient)

	// 4. Prepare upload directories
	uploader, err := handler.NewUploader(cfg.UploadDir)
	if err != nil {
		log.Error().Err(err).Msg("upload directory setup failed")
		fmt.Fprintf(os.Stderr, "upload directory setup failed: %v\n", err)
		os.Exit(1)
	}

	// 5. Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// 6. Initialize services
	jwtManager := utils.NewJWTManager(cfg.JWTSecret)
	authSvc := service.NewAdminAuthService(adminRepo, jwtManager)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, homeCache)
	productSvc := service.NewProductService(productRepo, homeCache)
	blogSvc := service.NewBlogService(blogRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	mailSvc := service.NewMailService(cfg.SMTP)
	if !mailSvc.Enabled() {
		log.Warn().Msg("SMTP not configured - contact notifications disabled")
	}

	// 6a. Seed the bootstrap admin account
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authSvc.EnsureBootstrapAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error().Err(err).Msg("bootstrap admin setup failed")
			fmt.Fprintf(os.Stderr, "bootstrap admin setup failed: %v\n", err)
			os.Exit(1)
		}
	}

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db),
		Auth:     handler.NewAuthHandler(authSvc, cfg.Env == "production"),
		Category: handler.NewCategoryHandler(categorySvc),
		Product:  handler.NewProductHandler(productSvc, uploader),
		Blog:     handler.NewBlogHandler(blogSvc, uploader),
		Settings: handler.NewSettingsHandler(settingsSvc, uploader),
		Contact:  handler.NewContactHandler(mailSvc),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(jwtManager)
	loginLimiter := middleware.NewLoginRateLimiter(redisClient)
	contactLimiter := middleware.NewContactRateLimiter(redisClient)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	router.Static("/uploads", uploader.Root())
	setupRoutes(router, handlers, jwtMw, loginLimiter, contactLimiter)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Blog     *handler.BlogHandler
	Settings *handler.SettingsHandler
	Contact  *handler.ContactHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, loginLimiter, contactLimiter *middleware.RateLimiter) {
	router.GET("/health", handlers.Health.GetHealth)

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health.GetHealth)

		// Public storefront routes
		api.GET("/categories", handlers.Category.List)
		api.GET("/categories/home", handlers.Category.Home)
		api.GET("/products", handlers.Product.List)
		api.GET("/products/categories", handlers.Product.Categories)
		api.GET("/products/:id", handlers.Product.Get)
		api.GET("/blogs", handlers.Blog.List)
		api.GET("/blogs/:id", handlers.Blog.Get)
		api.GET("/settings", handlers.Settings.Get)
		api.GET("/settings/catalogue/download", handlers.Settings.DownloadCatalogue)
		api.POST("/contact", contactLimiter.Handle(), handlers.Contact.Submit)

		// Admin auth
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Handle(), handlers.Auth.Login)
			auth.POST("/logout", handlers.Auth.Logout)
			auth.GET("/me", jwtMiddleware.Handle(), handlers.Auth.Me)
			auth.GET("/verify", jwtMiddleware.Handle(), handlers.Auth.Verify)
		}

		// Admin routes (JWT + admin role)
		admin := api.Group("/admin")
		admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
		{
			admin.GET("/categories", handlers.Category.ListAll)
			admin.POST("/categories", handlers.Category.Create)
			admin.PUT("/categories/reorder", handlers.Category.Reorder)
			admin.PUT("/categories/:id", handlers.Category.Update)
			admin.PUT("/categories/:id/slot", handlers.Category.ToggleSlot)
			admin.DELETE("/categories/:id", handlers.Category.Delete)

			admin.GET("/products", handlers.Product.ListAll)
			admin.POST("/products", handlers.Product.Create)
			admin.PUT("/products/:id", handlers.Product.Update)
			admin.DELETE("/products/:id", handlers.Product.Delete)

			admin.GET("/blogs", handlers.Blog.ListAll)
			admin.POST("/blogs", handlers.Blog.Create)
			admin.PUT("/blogs/:id", handlers.Blog.Update)
			admin.DELETE("/blogs/:id", handlers.Blog.Delete)

			admin.POST("/settings/catalogue", handlers.Settings.UploadCatalogue)
			admin.DELETE("/settings/catalogue", handlers.Settings.DeleteCatalogue)
		}
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
