package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/sujalbistaa/swipe/internal/auth"
	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/db"
	routes "github.com/sujalbistaa/swipe/internal/http"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/pitch"
	"github.com/sujalbistaa/swipe/internal/system"
	"github.com/sujalbistaa/swipe/internal/ws"
)

func main() {
	// .env must be loaded before anything reads the environment.
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))
	if !foundEnv {
		logger.Info("No .env file found, reading from environment")
	}
	if cfg.GeneratedSecret {
		logger.Warning("JWT_SECRET not set, using a random secret. Tokens will not survive a restart.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Database
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// 2. Migrations
	logger.Info("Running database migrations...")
	if err := db.Migrate(database); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations complete.")

	// 3. Background jobs and token revocation
	scheduler := cron.New()
	var revoker auth.Revoker
	if cfg.RedisURL != "" {
		rdb, err := auth.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
		logger.Info("Token revocation backed by redis")
	} else {
		mem := auth.NewMemoryRevoker()
		if _, err := scheduler.AddJob("@every 10m", mem); err != nil {
			logger.Fatalf("Failed to schedule revocation pruning: %v", err)
		}
		revoker = mem
	}

	// 4. WebSocket hub
	hub := ws.NewHub()
	go hub.Run(ctx)

	// 5. Services and router
	env := &routes.Env{
		Pitches: pitch.NewService(database, hub),
		Auth: auth.NewService(database,
			auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime),
			revoker,
			cfg.Auth.MinPasswordLength,
		),
		System: system.NewService(database, cfg.Env),
		Hub:    hub,
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupRoutes(router, env, cfg, scheduler)
	scheduler.Start()

	// 6. Server with graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	<-scheduler.Stop().Done()
	if err := db.Close(database); err != nil {
		logger.Warningf("Closing database: %v", err)
	}

	logger.Info("Server exiting")
}
