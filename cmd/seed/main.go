// Command seed inserts the demo pitches into an empty database.
package main

import (
	"context"
	"time"

	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/db"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/system"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	message, err := system.NewService(database, cfg.Env).Seed(ctx)
	if err != nil {
		logger.Fatalf("Seeding failed: %v", err)
	}
	logger.Info(message)
}
