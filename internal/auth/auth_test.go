package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookeryapp/cookery-server/internal/domain"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("Testpass123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "Testpass123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("samepassword")
	require.NoError(t, err)
	h2, err := HashPassword("samepassword")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		ID:    "user-abc123",
		Email: "test@example.com",
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "user-abc123", claims.Subject)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken("v4.local.garbage")
	assert.Error(t, err)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, -1*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "user-x", Email: "x@x.com"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenService_BadKey(t *testing.T) {
	_, err := NewTokenService("short", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestRefreshToken_HashIsStable(t *testing.T) {
	svc, err := NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	tok, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	assert.Equal(t, HashRefreshToken(tok), HashRefreshToken(tok))
	assert.NotEqual(t, tok, HashRefreshToken(tok))
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key1, 32)

	// Second load returns the same key.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}
