package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/sanatanigyan/granthalaya/configs"
	"github.com/sanatanigyan/granthalaya/internal/application/services"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/email"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/health"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/httpserver"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/memcache"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/redis"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting Granthalaya application...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// In-memory cache for catalog reads and the Redis-backed local store
	// for per-client state
	catalogCache := memcache.New(cfg.Cache.DefaultTTL)
	localStore := redis.NewLocalStore(redisClient, "local", logger)

	// Repository implementations
	bookRepo := repositories.NewBookRepository(database, logger)
	mantraRepo := repositories.NewMantraRepository(database, logger)
	productRepo := repositories.NewProductRepository(database, logger)
	categoryRepo := repositories.NewCategoryRepository(database, logger)
	messageRepo := repositories.NewMessageRepository(database, logger)
	securityEventRepo := repositories.NewSecurityEventRepository(database, logger)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient, cfg.RateLimit.KeyPrefix)

	// Email notifications
	emailConfig := &email.EmailConfig{
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		AdminEmail:     cfg.Email.AdminEmail,
		SiteName:       cfg.Email.SiteName,
	}
	emailService, err := email.NewEmailService(emailConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Wire application services
	catalogService := services.NewCatalogService(services.CatalogDeps{
		Books:      bookRepo,
		Mantras:    mantraRepo,
		Products:   productRepo,
		Categories: categoryRepo,
		Cache:      catalogCache,
		Local:      localStore,
	}, &services.CatalogConfig{
		TTL:          cfg.Cache.DefaultTTL,
		CategoryTTL:  cfg.Cache.CategoryTTL,
		RecentMaxAge: cfg.Cache.RecentMaxAge,
	}, logger)

	securityService := services.NewSecurityService(rateLimitRepo, securityEventRepo, &services.SecurityConfig{
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      cfg.RateLimit.Window,
	}, logger)

	messageService := services.NewMessageService(messageRepo, securityService, emailService, logger)
	japService := services.NewJapService(localStore, cfg.Cache.JapSessionMaxAge, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		CatalogService:  catalogService,
		MessageService:  messageService,
		SecurityService: securityService,
		JapService:      japService,
		HealthCheckers:  hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
