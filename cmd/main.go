package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"lingo_admin_console/internal/bootstrap"
	"lingo_admin_console/internal/cache"
	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/handlers"
	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/purge"
	"lingo_admin_console/internal/repository"
	"lingo_admin_console/internal/service"
)

func main() {
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	logger := bootstrap.NewLogger(appEnv, config.Cfg.Log.Level)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	ctx := context.Background()

	// 1. Document store and identity service
	backends, err := bootstrap.OpenBackends(ctx, config.Cfg.Firebase, logger)
	if err != nil {
		slog.Error("Error initializing backends", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := backends.Close(); err != nil {
			slog.Error("Error closing Firestore client", slog.Any("error", err))
		}
	}()
	store, idp := backends.Store, backends.Identity

	// 2. Audit database (optional)
	var db *gorm.DB
	if config.Cfg.Database.URL != "" {
		db, err = repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
		if err != nil {
			slog.Error("Error initializing database", slog.Any("error", err))
			os.Exit(1)
		}
		if err := repository.Migrate(db); err != nil {
			slog.Error("Error migrating audit schema", slog.Any("error", err))
			os.Exit(1)
		}
		sqlDB, err := db.DB()
		if err != nil {
			slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Error closing database connection", slog.Any("error", err))
			} else {
				slog.Info("Database connection closed.")
			}
		}()
	}

	// 3. Dependency Injection
	engine := purge.NewEngine(store, purge.Options{
		BatchLimit:  config.Cfg.Purge.BatchLimit,
		Headroom:    config.Cfg.Purge.BatchHeadroom,
		PageSize:    config.Cfg.Purge.PageSize,
		Concurrency: config.Cfg.Purge.Concurrency,
	})

	userRepo := repository.NewDocUserRepository(store)
	contentRepo := repository.NewDocContentRepository(store, config.Cfg.Purge.PageSize)
	badgeRepo := repository.NewDocBadgeRepository(store)
	feedbackRepo := repository.NewDocFeedbackRepository(store)
	auditRepo := repository.NewGormAuditRepository()

	auditService := service.NewAuditService(db, auditRepo, logger)
	userService := service.NewUserService(userRepo, contentRepo, badgeRepo, feedbackRepo,
		config.Cfg.Cache.UserListTTL, cache.SystemClock{}, logger)
	accountService := service.NewAccountService(engine, userRepo, idp, service.NewMailer(&config.Cfg),
		auditService, userService, logger)
	contentService := service.NewContentService(engine, contentRepo, auditService, userService, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, auditService, logger)

	accountHandler := handlers.NewAccountHandler(accountService)
	userHandler := handlers.NewUserHandler(userService, accountService)
	contentHandler := handlers.NewContentHandler(contentService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	auditHandler := handlers.NewAuditHandler(auditService)
	healthHandler := handlers.NewHealthHandler(db)

	// 4. Setup Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)
	r.Use(chimiddleware.Recoverer)
	// Bulk deletions can run for minutes; the timeout only bounds a stuck request.
	r.Use(chimiddleware.Timeout(10 * time.Minute))

	devAuth := appEnv == "dev" && config.Cfg.Firebase.UseMemoryStore
	userAuth := middleware.UserAuthMiddleware(idp)
	adminAuth := middleware.AdminAuthMiddleware(config.Cfg.JWT.SecretKey, config.Cfg.JWT.Issuer)
	if devAuth {
		slog.Warn("Development authentication enabled: X-User-ID and X-Admin headers are trusted")
		userAuth = middleware.DevUserContextMiddleware
		adminAuth = middleware.DevAdminMiddleware
	}

	r.Get("/health", healthHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(userAuth).Post("/account/delete", accountHandler.DeleteAccount)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Get("/{user_id}", userHandler.GetUser)
				r.Delete("/{user_ref}", userHandler.DeleteUser)
				r.Patch("/{user_id}/status", userHandler.UpdateUserStatus)
				r.Post("/{user_id}/reset-progress", userHandler.ResetProgress)
				r.Get("/{user_id}/collections", userHandler.ListCollections)
			})

			r.Route("/content", func(r chi.Router) {
				r.Post("/cascade-delete", contentHandler.CascadeDelete)
				r.Get("/duplicates", contentHandler.FindDuplicates)
				r.Delete("/{language_id}/{level}/{content_type}/{content_id}", contentHandler.DeleteContentItem)
			})
			r.Post("/assessments/cleanup-orphans", contentHandler.CleanupOrphans)

			r.Get("/stats", userHandler.GetStats)
			r.Get("/badges", userHandler.ListBadges)
			r.Get("/feedback", feedbackHandler.ListFeedback)
			r.Patch("/feedback/{user_id}/resolve", feedbackHandler.ResolveFeedback)
			r.Get("/audit", auditHandler.ListAudit)
		})
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 11 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
