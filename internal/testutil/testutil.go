// Package testutil builds throwaway databases and configs for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/db"
)

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-secret-do-not-use"

// Config returns a config pointing at a fresh SQLite file in t.TempDir().
func Config(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Env:        "test",
		Port:       "0",
		LogLevel:   "error",
		CORSOrigin: "*",
		Database: config.DatabaseConfig{
			URL:             "sqlite://" + filepath.Join(t.TempDir(), "swipe_test.db"),
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
		},
		Auth: config.AuthConfig{
			JWTSecret:         TestJWTSecret,
			TokenLifetime:     time.Hour,
			MinPasswordLength: 8,
		},
		RateLimit: config.RateLimitConfig{
			RPS:   1000,
			Burst: 1000,
		},
	}
}

// SetupTestDB opens and migrates the database described by cfg.
func SetupTestDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), cfg.Database)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return gdb
}

// NewDB is SetupTestDB with a default config.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupTestDB(t, Config(t))
}
