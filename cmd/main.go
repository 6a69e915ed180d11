package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/cache"
	"github.com/donorhub/donorhub/internal/config"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/handler"
	"github.com/donorhub/donorhub/internal/hub"
	"github.com/donorhub/donorhub/internal/mailer"
	"github.com/donorhub/donorhub/internal/middleware"
	"github.com/donorhub/donorhub/internal/repository"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/database"
	"github.com/donorhub/donorhub/pkg/jwt"
	pkglog "github.com/donorhub/donorhub/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: cfg.Log.ServiceName,
	})
	logger := pkglog.L()

	// Connect to database using GORM
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.DonorModel{},
		&domain.BloodRequestModel{},
		&domain.ChatMessageModel{},
		&domain.OTPModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	donorRepo := repository.NewGormDonorRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	otpRepo := repository.NewGormOTPRepository(db)
	messageStore := repository.NewGormMessageStore(db)

	// Initialize Redis cache
	historyCache, err := cache.NewRedisHistoryCache(cfg.Redis, cfg.Chat.HistoryPrefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer historyCache.Close()
	logger.Info().Msg("redis cache connected")

	// Initialize JWT manager
	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create jwt manager")
	}

	// Initialize mailer
	var mail mailer.Mailer
	if cfg.SMTP.Enabled {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	} else {
		mail = mailer.NewNoopMailer()
	}

	// Start the websocket hub
	h := hub.NewHub(cfg.WebSocket)
	go h.Run()

	// Initialize services
	resolver := service.NewCounterpartResolver(requestRepo)
	chatService := service.NewChatService(h, messageStore, resolver, historyCache, cfg.Chat.SendTimeout)
	historyService := service.NewHistoryService(messageStore, requestRepo, userRepo, historyCache, cfg.Chat.HistoryCacheTTL)
	authService := service.NewAuthService(userRepo, otpRepo, mail, tokens)
	requestService := service.NewRequestService(requestRepo)
	adminService := service.NewAdminService(requestRepo, userRepo, donorRepo, mail)
	donorService := service.NewDonorService(donorRepo, userRepo)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	authHandler := handler.NewAuthHandler(authService)
	donorHandler := handler.NewDonorHandler(donorService)
	requestHandler := handler.NewRequestHandler(requestService)
	adminHandler := handler.NewAdminHandler(adminService)
	chatHandler := handler.NewChatHandler(historyService)
	wsHandler := handler.NewWSHandler(h, chatService, cfg.WebSocket, tokens)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger, "/health", "/ws"))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	api := r.Group("/api")
	authHandler.RegisterRoutes(api)
	donorHandler.RegisterRoutes(api, authMiddleware)
	requestHandler.RegisterRoutes(api, authMiddleware)
	adminHandler.RegisterRoutes(api, authMiddleware)
	chatHandler.RegisterRoutes(api, authMiddleware)
	r.GET("/ws", wsHandler.HandleWebSocket)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("donorhub starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped")
}
