// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is not set. The server
// refuses to start without a backing store.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set in the environment or .env file")

// ErrMissingJWTSecret is returned outside of the dev environment when no
// signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when ENV is not dev")

type Config struct {
	Env        string
	Port       string
	LogLevel   string
	CORSOrigin string
	StaticDir  string
	RedisURL   string

	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig

	// GeneratedSecret is true when JWT_SECRET was missing and a random
	// per-process secret was used instead.
	GeneratedSecret bool
}

type DatabaseConfig struct {
	URL             string
	Echo            bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	TokenLifetime     time.Duration
	MinPasswordLength int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadDotEnv reads .env into the process environment. It reports whether a
// file was found; a missing file is normal in production.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_ECHO", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_LIFETIME", time.Hour)
	v.SetDefault("AUTH_MIN_PASSWORD_LENGTH", 8)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.AutomaticEnv()

	cfg := &Config{
		Env:        v.GetString("ENV"),
		Port:       v.GetString("PORT"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		CORSOrigin: v.GetString("CORS_ORIGIN"),
		StaticDir:  v.GetString("STATIC_DIR"),
		RedisURL:   v.GetString("REDIS_URL"),
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Echo:            v.GetBool("DB_ECHO"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("JWT_SECRET"),
			TokenLifetime:     v.GetDuration("JWT_LIFETIME"),
			MinPasswordLength: v.GetInt("AUTH_MIN_PASSWORD_LENGTH"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}

	if cfg.Auth.JWTSecret == "" {
		if !cfg.IsDev() {
			return nil, ErrMissingJWTSecret
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Auth.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
