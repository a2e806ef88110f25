package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AbrahamLara/chat-app-backend/config"
	"github.com/AbrahamLara/chat-app-backend/internal/handler"
	"github.com/AbrahamLara/chat-app-backend/internal/middleware"
	appredis "github.com/AbrahamLara/chat-app-backend/internal/redis"
	"github.com/AbrahamLara/chat-app-backend/internal/repository"
	"github.com/AbrahamLara/chat-app-backend/internal/services"
	"github.com/AbrahamLara/chat-app-backend/pkg/database"
	"github.com/AbrahamLara/chat-app-backend/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == "release" {
		logMode = logger.ProductionMode
	}
	log := logger.New(logMode)
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Errorf("failed to connect to database: %v", err)
		return
	}
	if err := database.Migrate(db); err != nil {
		log.Errorf("failed to apply migrations: %v", err)
		return
	}

	var limiter *appredis.RateLimiter
	if cfg.RateLimitEnabled() {
		client, err := appredis.NewClient(appredis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			log.Errorf("failed to connect to redis: %v", err)
			return
		}
		limiter = appredis.NewRateLimiter(client, appredis.DefaultRateLimitConfig())
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(chatRepo)
	userService := services.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	userHandler := handler.NewUserHandler(userService)

	gin.SetMode(cfg.AppMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.ErrorHandler(log))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	if limiter != nil {
		public.Use(middleware.AuthRateLimitMiddleware(limiter))
	}
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(authService))
	authed.GET("/users", userHandler.List)
	authed.GET("/chats", chatHandler.List)
	authed.GET("/chats/:chatID/members", chatHandler.Members)
	if limiter != nil {
		authed.POST("/chats", middleware.ChatCreateRateLimitMiddleware(limiter), chatHandler.Create)
	} else {
		authed.POST("/chats", chatHandler.Create)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.AppPort),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
