package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/trackfolio/trackfolio-be/internal/api"
	"github.com/trackfolio/trackfolio-be/internal/auth"
	"github.com/trackfolio/trackfolio-be/internal/config"
	"github.com/trackfolio/trackfolio-be/internal/database"
	"github.com/trackfolio/trackfolio-be/internal/logger"
	"github.com/trackfolio/trackfolio-be/internal/monitoring"
	"github.com/trackfolio/trackfolio-be/internal/services"
	"github.com/trackfolio/trackfolio-be/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogFormat)

	// Select the persistence backend.
	var (
		userStore  store.UserStore
		assetStore store.AssetStore
		eventStore store.EventStore
	)
	var snapshotter *monitoring.Snapshotter

	switch cfg.StoreDriver {
	case "file":
		if userStore, err = store.NewFileUserStore(cfg.DataDir); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize file user store")
		}
		if assetStore, err = store.NewFileAssetStore(cfg.DataDir); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize file asset store")
		}
		if eventStore, err = store.NewFileEventStore(cfg.DataDir); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize file event store")
		}
		if cfg.SnapshotSchedule != "" {
			snapshotter, err = monitoring.NewSnapshotter(cfg.DataDir, cfg.SnapshotDir, cfg.SnapshotSchedule)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to initialize snapshotter")
			}
			go snapshotter.Run()
		}
	default:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}

		userStore = store.NewSQLiteUserStore(db)
		assetStore = store.NewSQLiteAssetStore(db)
		eventStore = store.NewSQLiteEventStore(db)
	}

	// Set up services.
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)
	authService := services.NewAuthService(userStore, hasher, tokenService)
	eventService := services.NewEventService(eventStore)
	assetService := services.NewAssetService(assetStore, eventService)

	router := api.NewRouter(tokenService, authService, assetService, eventService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if snapshotter != nil {
		snapshotter.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
