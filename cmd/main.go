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

	"github.com/rallypoint-app/rallypoint/brackets"
	"github.com/rallypoint-app/rallypoint/config"
	"github.com/rallypoint-app/rallypoint/db"
	"github.com/rallypoint-app/rallypoint/handlers"
	"github.com/rallypoint-app/rallypoint/repositories"
	api "github.com/rallypoint-app/rallypoint/routes"
	"github.com/rallypoint-app/rallypoint/services"
	"github.com/rallypoint-app/rallypoint/storage"
)

// sweepInterval is how often pending registrations are checked against the
// expiry window.
const sweepInterval = 1 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

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

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	poolRepo := repositories.NewPostgresPoolRepository(dbConn)
	bracketRepo := repositories.NewPostgresBracketRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	ratingRepo := repositories.NewPostgresRatingRepository(dbConn)

	authService := services.NewAuthService(userRepo, uploader)
	tournamentService := services.NewTournamentService(
		tournamentRepo, registrationRepo, teamRepo, poolRepo, bracketRepo, matchRepo,
		uploader, logger,
	)
	registrationService := services.NewRegistrationService(registrationRepo, tournamentRepo, userRepo, logger)
	lifecycleService := services.NewLifecycleService(
		dbConn, tournamentRepo, registrationRepo, teamRepo, poolRepo, bracketRepo, matchRepo,
		wsHub, logger,
	)
	ratingService := services.NewRatingService(ratingRepo, logger)
	matchService := services.NewMatchService(
		dbConn, tournamentRepo, teamRepo, poolRepo, bracketRepo, matchRepo,
		ratingService, wsHub, logger,
	)

	// Background sweep: stale pending registrations expire after the TTL.
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		if _, err := registrationService.ExpireStale(sweepCtx); err != nil {
			logger.Error("registration sweep failed", slog.Any("error", err))
		}
		for {
			select {
			case <-ticker.C:
				if _, err := registrationService.ExpireStale(sweepCtx); err != nil {
					logger.Error("registration sweep failed", slog.Any("error", err))
				}
			case <-sweepCtx.Done():
				return
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, lifecycleService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	matchHandler := handlers.NewMatchHandler(matchService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		tournamentHandler,
		registrationHandler,
		matchHandler,
		ratingHandler,
		webSocketHandler,
	)

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
	}
	logger.Info("application exited")
}
