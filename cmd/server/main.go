package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/api"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/cache"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/config"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/logger"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/queue"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository/mongo"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/service"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Info("Starting challenge service...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}
	logger.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Error("Could not connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Success("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureZoneIndexes(ctx, appDB.Collection("challenge_zones"))
		mongo.EnsureParticipationIndexes(ctx, appDB.Collection("challenge_participation"))
		mongo.EnsureLeaderboardIndexes(ctx, appDB.Collection("challenge_leaderboards"))
		mongo.EnsureVenueIndexes(ctx, appDB.Collection("venues"))
		logger.Info("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	zoneRepo := mongo.NewMongoZoneRepository(appDB)
	participationRepo := mongo.NewMongoParticipationRepository(appDB)
	leaderboardRepo := mongo.NewMongoLeaderboardRepository(appDB)
	venueRepo := mongo.NewMongoVenueRepository(appDB)

	// --- Optional collaborators ---
	leaderboardCache := cache.NewRedisLeaderboardCache(cfg.Redis, cfg.Challenge.LeaderboardCacheTTL)
	if leaderboardCache != nil {
		logger.Info("Leaderboard cache enabled (redis at %s)", cfg.Redis.Address)
	}

	var archiver service.SnapshotArchiver
	if cfg.S3.BucketName != "" {
		s3Archiver, err := storage.NewS3Archiver(cfg.S3)
		if err != nil {
			logger.Error("Failed to initialize S3 snapshot archiver: %v", err)
			os.Exit(1)
		}
		archiver = s3Archiver
		logger.Info("Snapshot archiver enabled (bucket %s)", cfg.S3.BucketName)
	} else {
		logger.Warning("No S3 bucket configured; leaderboard rebuilds will not archive snapshots")
	}

	// --- Initialize Services ---
	var challengeCache service.LeaderboardCache
	if leaderboardCache != nil {
		challengeCache = leaderboardCache
	}
	challengeService := service.NewChallengeService(zoneRepo, participationRepo, leaderboardRepo, challengeCache, archiver)
	venueService := service.NewVenueService(venueRepo)

	// Seed the venue collection on first run, then load the registry cache.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if venues, err := venueRepo.ListAll(seedCtx); err == nil && len(venues) == 0 {
		if err := venueRepo.Seed(seedCtx, service.BuiltinVenues()); err != nil {
			logger.Warning("Venue seed failed: %v", err)
		}
	}
	if err := venueService.Refresh(seedCtx); err != nil {
		logger.Warning("Initial venue refresh failed: %v", err)
	}
	seedCancel()

	// --- Workout-completion consumer ---
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()
	if cfg.AMQP.URL != "" {
		go queue.StartWorkoutConsumer(consumerCtx, cfg.AMQP.URL, cfg.AMQP.Queue, challengeService)
		logger.Info("Workout consumer started (queue %s)", cfg.AMQP.Queue)
	} else {
		logger.Warning("No AMQP URL configured; awards only run via the HTTP endpoint")
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, challengeService, venueService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Success("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ListenAndServe error: %v", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	consumerCancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exiting.")
}
