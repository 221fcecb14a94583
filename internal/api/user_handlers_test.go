package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "me@example.com")

	resp := ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "me@example.com", body.Email)
	assert.Equal(t, "Test User", body.Name)
}

func TestGetCurrentUser_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/users/me", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpdateCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "me@example.com")

	resp := ts.api.Patch("/api/v1/users/me",
		map[string]any{"name": "Renamed"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "Renamed", body.Name)
	// Untouched fields survive a partial update.
	assert.Equal(t, "me@example.com", body.Email)
}

func TestUpdateCurrentUser_ChangePassword(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "me@example.com")

	resp := ts.api.Patch("/api/v1/users/me",
		map[string]any{"password": "Newpass456"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	// Old password no longer works, new one does.
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "me@example.com",
		"password": "Testpass123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "me@example.com",
		"password": "Newpass456",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUpdateCurrentUser_EmailConflict(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerAndLogin(t, "taken@example.com")
	token := ts.registerAndLogin(t, "me@example.com")

	resp := ts.api.Patch("/api/v1/users/me",
		map[string]any{"email": "taken@example.com"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)
}
