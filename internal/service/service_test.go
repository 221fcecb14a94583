package service

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cookeryapp/cookery-server/internal/auth"
	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store/sqlite"
)

// testServices bundles the services under test with their shared store.
type testServices struct {
	auth     *AuthService
	users    *UserService
	recipes  *RecipeService
	taxonomy *TaxonomyService
}

// setupTest creates services backed by a temporary SQLite database.
func setupTest(t *testing.T) *testServices {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	authKey, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey),
		15*time.Minute,
		30*24*time.Hour,
	)
	require.NoError(t, err)

	return &testServices{
		auth:     NewAuthService(s, tokenService, nil),
		users:    NewUserService(s, nil),
		recipes:  NewRecipeService(s, nil),
		taxonomy: NewTaxonomyService(s, nil),
	}
}

// registerTestUser registers a user and returns it.
func registerTestUser(t *testing.T, svc *testServices, email string) *domain.User {
	t.Helper()
	user, err := svc.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "Testpass123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return user
}
