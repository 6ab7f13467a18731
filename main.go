package main

import (
	"context"
	"log"
	"time"

	"taxi-booking/cmd"
	"taxi-booking/internal/data/repository"
	"taxi-booking/internal/wire"
	"taxi-booking/pkg/database"
	"taxi-booking/pkg/events"
	"taxi-booking/pkg/routing"
	"taxi-booking/pkg/utils"

	"go.uber.org/zap"
)

const cleanupInterval = time.Hour

func main() {
	ctx := context.Background()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
	}

	hub := events.NewHub(logger)
	sinks := []events.Publisher{hub}

	// Drafts live in process memory unless Redis is configured for them
	drafts := repository.NewMemoryDraftStore(config.Booking.DraftTTL)
	if config.Redis.URL != "" {
		client, err := events.NewRedisClient(ctx, config.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()

		sinks = append(sinks, events.NewRedisPublisher(client))
		if config.Booking.DraftStore == "redis" {
			drafts = repository.NewRedisDraftStore(client, config.Booking.DraftTTL, logger)
		}
		logger.Info("Redis connected", zap.String("draft_store", config.Booking.DraftStore))
	} else if config.Booking.DraftStore == "redis" {
		logger.Warn("DRAFT_STORE=redis without REDIS_URL, keeping drafts in memory")
	}

	if config.RabbitMQ.URL != "" {
		rabbit, err := events.NewRabbitPublisher(config.RabbitMQ.URL, config.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to rabbitmq", zap.Error(err))
		}
		defer rabbit.Close()

		sinks = append(sinks, rabbit)
		logger.Info("RabbitMQ connected", zap.String("exchange", config.RabbitMQ.Exchange))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, drafts, logger)

	publisher := events.NewFanout(logger, sinks...)
	logger.Info("Ride event sinks ready", zap.Int("sinks", publisher.Len()))

	// Wire all dependencies
	app := wire.Wiring(wire.Deps{
		Repo:      repos,
		Routes:    routing.NewClient(config.Routing.BaseURL, config.Routing.Timeout),
		Publisher: publisher,
		Hub:       hub,
	}, config, logger)

	hubWorker := func(ctx context.Context) error {
		hub.Run(ctx)
		return nil
	}

	cleanupWorker := func(ctx context.Context) error {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if pruner, ok := drafts.(repository.DraftPruner); ok {
					logger.Debug("Expired drafts pruned", zap.Int("removed", pruner.PruneExpired(ctx)))
				}

				removed, err := repos.Session.CleanExpiredSessions(ctx)
				if err != nil {
					logger.Error("Failed to clean expired sessions", zap.Error(err))
					continue
				}
				logger.Debug("Expired sessions cleaned", zap.Int64("removed", removed))
			}
		}
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger, hubWorker, cleanupWorker); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
