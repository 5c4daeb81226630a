package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/swipe/internal/config"
	"github.com/sujalbistaa/swipe/internal/models"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantName   string
		wantSQLite bool
		wantErr    bool
	}{
		{"postgres", "postgres://u:p@localhost:5432/swipe", "postgres", false, false},
		{"postgresql", "postgresql://u:p@localhost/swipe?sslmode=require", "postgres", false, false},
		{"driver suffix", "postgresql+asyncpg://u:p@localhost/swipe", "postgres", false, false},
		{"sqlite", "sqlite://swipe.db", "sqlite", true, false},
		{"sqlite driver suffix", "sqlite+aiosqlite:///./app.db", "sqlite", true, false},
		{"sqlite empty path", "sqlite://", "", false, true},
		{"sqlite driver suffix empty path", "sqlite+aiosqlite:///", "", false, true},
		{"mysql", "mysql://u:p@localhost/swipe", "", false, true},
		{"no scheme", "swipe.db", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, isSQLite, err := Dialector(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, d.Name())
			assert.Equal(t, tt.wantSQLite, isSQLite)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("a.db?mode=rwc"))
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		rest         string
		driverSuffix bool
		want         string
	}{
		{"swipe.db", false, "swipe.db"},
		{"./swipe.db", false, "./swipe.db"},
		{"/var/lib/swipe.db", false, "/var/lib/swipe.db"},
		{"/./app.db", false, "./app.db"},
		{"/../data/app.db", false, "../data/app.db"},
		{"/./app.db", true, "./app.db"},
		{"/app.db", true, "app.db"},
		{"//var/lib/app.db", true, "/var/lib/app.db"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqlitePath(tt.rest, tt.driverSuffix), tt.rest)
	}
}

func TestOpenAndMigrate(t *testing.T) {
	cfg := config.DatabaseConfig{
		URL:             "sqlite://" + filepath.Join(t.TempDir(), "swipe.db"),
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}

	gdb, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(gdb))
	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
