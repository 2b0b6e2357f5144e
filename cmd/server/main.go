package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tours-api/internal/application/services"
	"tours-api/internal/config"
	httpapi "tours-api/internal/delivery/http"
	"tours-api/internal/infrastructure"
	"tours-api/internal/infrastructure/db/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg := config.Load()

	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	tourRepo := postgres.NewTourRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	jwtService := infrastructure.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	sender := infrastructure.NewSendGridSender(cfg.EmailAPIKey, cfg.EmailSender, cfg.EmailSenderName)
	cache := infrastructure.NewRedisService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)

	authService := services.NewAuthService(userRepo, jwtService, sender, cfg.ResetTokenTTL, logger)
	userService := services.NewUserService(userRepo, cache, logger)
	tourService := services.NewTourService(tourRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, tourRepo, logger)

	e := httpapi.NewRouter(cfg, logger, authService, userService, tourService, reviewService)

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
