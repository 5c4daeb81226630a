package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	ti := NewTokenIssuer("secret", 30*time.Minute)
	userID := uuid.New()

	raw, issued, err := ti.Issue(userID)
	require.NoError(t, err)

	claims, err := ti.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, jwt.ClaimStrings{tokenAudience}, claims.Audience)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseRejectsOtherAlgorithmsAndAudiences(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		ID:        "x",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ti.Parse(none)
	assert.Error(t, err)

	wrongAud, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Audience:  jwt.ClaimStrings{"someone-else"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		ID:        "x",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ti.Parse(wrongAud)
	assert.Error(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  uuid.NewString(),
		Audience: jwt.ClaimStrings{tokenAudience},
		ID:       "x",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ti.Parse(noExpiry)
	assert.Error(t, err)
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryRevoker()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "live", now.Add(time.Minute)))
	require.NoError(t, m.Revoke(ctx, "already-expired", now.Add(-time.Minute)))

	revoked, err := m.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = m.IsRevoked(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Equal(t, 0, m.Prune())

	now = now.Add(2 * time.Minute)
	revoked, _ = m.IsRevoked(ctx, "live")
	assert.False(t, revoked)
	assert.Equal(t, 1, m.Prune())
	assert.Empty(t, m.entries)
}
