package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/trungvq/football-predictions/config"
	"github.com/trungvq/football-predictions/db"
	"github.com/trungvq/football-predictions/handlers"
	"github.com/trungvq/football-predictions/realtime"
	"github.com/trungvq/football-predictions/repositories"
	api "github.com/trungvq/football-predictions/routes"
	"github.com/trungvq/football-predictions/services"
	"github.com/trungvq/football-predictions/storage"
)

// How often started matches are swept and locked.
const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	wsHub := realtime.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	predRepo := repositories.NewPostgresPredictionRepository(dbConn)
	voteRepo := repositories.NewPostgresVoteRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, uploader)
	matchService := services.NewMatchService(matchRepo, teamRepo, predRepo, wsHub)
	predictionService := services.NewPredictionService(predRepo, matchRepo)
	leaderboardService := services.NewLeaderboardService(predRepo, matchRepo, logger)
	voteService := services.NewVoteService(voteRepo)
	dashboardService := services.NewDashboardService(userRepo, teamRepo, matchRepo, predRepo)

	// Sweep started matches so predictions close even if the admin forgets
	// to lock manually.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("match lock scheduler started", slog.Duration("interval", schedulerInterval))

		lock := func() {
			locked, err := matchService.AutoLockStartedMatches(context.Background(), time.Now())
			if err != nil {
				logger.Error("scheduler: failed to lock started matches", slog.Any("error", err))
				return
			}
			if locked > 0 {
				logger.Info("scheduler: locked started matches", slog.Int64("count", locked))
			}
		}

		lock()
		for range ticker.C {
			lock()
		}
	}()

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Match:       handlers.NewMatchHandler(matchService),
		Prediction:  handlers.NewPredictionHandler(predictionService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Team:        handlers.NewTeamHandler(teamService),
		Vote:        handlers.NewVoteHandler(voteService),
		UserAdmin:   handlers.NewUserAdminHandler(userService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub),
	}, cfg.JWTSecretKey, cfg.CORSAllowedOrigins)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
