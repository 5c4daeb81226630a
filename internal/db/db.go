package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/models"
)

const sqliteBusyTimeout = 5 * time.Second

// Dialector picks the gorm driver for a DATABASE_URL.
//
//	postgres://, postgresql:// and postgresql+<driver>:// use pgx.
//	sqlite://<path> and sqlite+<driver>:///<path> use the pure Go SQLite driver.
func Dialector(dbURL string) (gorm.Dialector, bool, error) {
	scheme, rest, ok := strings.Cut(dbURL, "://")
	if !ok {
		return nil, false, fmt.Errorf("invalid DATABASE_URL: missing scheme")
	}
	// Drop a driver suffix such as "+asyncpg".
	driverSuffix := false
	if i := strings.IndexByte(scheme, '+'); i >= 0 {
		scheme = scheme[:i]
		driverSuffix = true
	}

	switch scheme {
	case "postgres", "postgresql":
		return postgres.Open("postgres://" + rest), false, nil
	case "sqlite":
		path := sqlitePath(rest, driverSuffix)
		if path == "" {
			return nil, false, fmt.Errorf("invalid DATABASE_URL: empty sqlite path")
		}
		return sqlite.Open(sqliteDSN(path)), true, nil
	default:
		return nil, false, fmt.Errorf("invalid DATABASE_URL scheme %q: must be postgres or sqlite", scheme)
	}
}

// sqlitePath turns the part after "://" into a file path. Driver-suffixed
// URLs (sqlite+aiosqlite:///./app.db) follow the SQLAlchemy convention where
// the third slash only separates an empty host, so "///x" is relative and
// "////x" absolute. A plain "sqlite://" URL takes the path verbatim, except
// that "/./" and "/../" prefixes are read as relative paths.
func sqlitePath(rest string, driverSuffix bool) string {
	if driverSuffix || strings.HasPrefix(rest, "/./") || strings.HasPrefix(rest, "/../") {
		return strings.TrimPrefix(rest, "/")
	}
	return rest
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, sep, sqliteBusyTimeout.Milliseconds())
}

// Open connects to the configured store, applies the pool policy and checks
// the connection before returning it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, isSQLite, err := Dialector(cfg.URL)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Silent
	if cfg.Echo {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger.Writer{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite {
		// One writer at a time; concurrent requests queue on the pool.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	logger.Info("Database connection established.")
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
