// Command cleanup-users deletes accounts whose usernames no longer pass
// registration validation.
package main

import (
	"context"
	"time"

	"github.com/sujalbistaa/swipe/internal/auth"
	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/db"
	"github.com/sujalbistaa/swipe/internal/logger"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close(database)

	svc := auth.NewService(database,
		auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime),
		auth.NewMemoryRevoker(),
		cfg.Auth.MinPasswordLength,
	)
	removed, err := svc.PurgeInvalidUsernames(ctx)
	if err != nil {
		logger.Fatalf("Cleanup failed: %v", err)
	}
	for _, name := range removed {
		logger.Infof("Deleted user %q", name)
	}
	logger.Infof("Removed %d users with invalid usernames", len(removed))
}
