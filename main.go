// main.go
package main

import (
	"context"
	"log"

	"bus-booking/cmd"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/scheduler"
	"bus-booking/internal/seed"
	"bus-booking/internal/wire"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
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

	// Initialize all in-memory stores
	repos := repository.NewRepository(logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed reference data and demo trips
	seed.Run(ctx, repos, app.Service.Auth, logger)

	// Start the background sweeps
	sched := scheduler.New(app.Service.Order, repos.Idempotency, config, logger)
	sched.Start(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
