package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "new@example.com",
		"password": "Testpass123",
		"name":     "New User",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "new@example.com", body.Email)
	assert.Equal(t, "New User", body.Name)
	assert.True(t, body.IsActive)

	// The password must never appear in the response.
	assert.NotContains(t, resp.Body.String(), "Testpass123")
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestRegister_NormalizesEmailDomain(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "Test2@EXAMPLE.Com",
		"password": "Testpass123",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "Test2@example.com", body.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "dup@example.com")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "dup@EXAMPLE.COM",
		"password": "Otherpass123",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestRegister_Invalid(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing email", map[string]any{"password": "Testpass123"}},
		{"bad email", map[string]any{"email": "not-an-email", "password": "Testpass123"}},
		{"short password", map[string]any{"email": "a@example.com", "password": "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "user@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "Testpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.NotEmpty(t, body.AccessToken)
	assert.NotEmpty(t, body.RefreshToken)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, "user@example.com", body.User.Email)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "user@example.com")

	// Wrong password and unknown email both return 401.
	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "Testpass123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "user@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "Testpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var login AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var refreshed AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &refreshed))
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// The rotated token still works.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": refreshed.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestLogout(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "user@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "user@example.com",
		"password": "Testpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var login AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))

	resp = ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	// Session gone: the refresh token no longer works.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Logout with an unknown token is a no-op, not an error.
	resp = ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}
