package system

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/swipe/internal/db"
	"github.com/sujalbistaa/swipe/internal/models"
	"github.com/sujalbistaa/swipe/internal/pitch"
	"github.com/sujalbistaa/swipe/internal/testutil"
)

func TestHealthConnected(t *testing.T) {
	svc := NewService(testutil.NewDB(t), "test")

	h := svc.Health(context.Background())
	assert.Equal(t, Health{Status: "ok", Environment: "test", Database: "connected"}, h)
}

func TestHealthReportsStoreErrorInline(t *testing.T) {
	gdb := testutil.NewDB(t)
	require.NoError(t, db.Close(gdb))
	svc := NewService(gdb, "test")

	h := svc.Health(context.Background())
	assert.Equal(t, "ok", h.Status)
	assert.True(t, strings.HasPrefix(h.Database, "error: "), h.Database)
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc := NewService(gdb, "test")
	pitches := pitch.NewService(gdb, nil)
	ctx := context.Background()

	msg, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Seeded 2 pitches", msg)

	listed, err := pitches.List(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(listed))
	for _, p := range listed {
		titles = append(titles, p.Title)
	}
	assert.ElementsMatch(t, []string{"Cat Café & Laundromat", "Pineapple on Pizza is Good"}, titles)

	msg, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, MessageSeeded, msg)

	var n int64
	require.NoError(t, gdb.Model(&models.Pitch{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	gdb := testutil.NewDB(t)
	require.NoError(t, gdb.Create(&models.Pitch{Title: "Existing", Description: "d", Type: "idea"}).Error)

	msg, err := NewService(gdb, "test").Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MessageSeeded, msg)

	var n int64
	require.NoError(t, gdb.Model(&models.Pitch{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
