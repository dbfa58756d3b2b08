package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"botrental/internal/cache"
	"botrental/internal/config"
	"botrental/internal/db"
	httpServer "botrental/internal/http"
	"botrental/internal/http/handlers"
	"botrental/internal/http/middleware"
	"botrental/internal/logger"
	"botrental/internal/notify"
	"botrental/internal/repository"
	"botrental/internal/service"
	"botrental/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connect failed", "addr", cfg.RedisAddr, "error", err)
	}
	defer redisCache.Close()

	sender, err := notify.NewTelegramSender(cfg.BotToken, cfg.AdminTelegramIDs)
	if err != nil {
		logger.Fatal("telegram sender init failed", "error", err)
	}

	userRepo := repository.NewUserRepository(dbPool)
	blockRepo := repository.NewBlockedUserRepository(dbPool)
	referralRepo := repository.NewReferralRepository(dbPool)
	botRepo := repository.NewBotRepository(dbPool)
	rentalRepo := repository.NewRentalRepository(dbPool)

	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	codeSvc := service.NewCodeService(redisCache, sender, cfg.CodeTTL)
	authSvc := service.NewAuthService(userRepo, tokenSvc, redisCache, cfg.UserCacheTTL)

	authUC := usecase.NewAuthUseCase(userRepo, referralRepo, codeSvc, tokenSvc, redisCache, sender)
	rentalUC := usecase.NewRentalUseCase(botRepo, rentalRepo, redisCache)
	adminUC := usecase.NewAdminUseCase(userRepo, blockRepo, redisCache, sender)

	h := handlers.NewHandler(authUC, rentalUC, adminUC)

	r := gin.Default()

	// CORS for the web client living on another origin.
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(redisCache.Client())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, cfg, h, authSvc, dbPool, redisCache.Client(), version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
