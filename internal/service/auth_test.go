package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/cookeryapp/cookery-server/internal/errors"
)

func TestRegister(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	user, err := svc.auth.Register(ctx, RegisterRequest{
		Email:    "test@example.com",
		Password: "Testpass123",
		Name:     "Test Name",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.ID, "user-"))
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "Test Name", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "Testpass123", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
}

func TestRegister_NormalizesEmailDomain(t *testing.T) {
	svc := setupTest(t)

	tests := []struct {
		in   string
		want string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
	}

	for _, tt := range tests {
		user, err := svc.auth.Register(context.Background(), RegisterRequest{
			Email:    tt.in,
			Password: "Testpass123",
		})
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, user.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	registerTestUser(t, svc, "dup@example.com")

	_, err := svc.auth.Register(ctx, RegisterRequest{
		Email:    "dup@EXAMPLE.com", // same after normalization
		Password: "Testpass123",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestRegister_Invalid(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"empty email", RegisterRequest{Email: "", Password: "Testpass123"}},
		{"not an email", RegisterRequest{Email: "not-an-email", Password: "Testpass123"}},
		{"short password", RegisterRequest{Email: "ok@example.com", Password: "pw"}},
		{"no password", RegisterRequest{Email: "ok@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.auth.Register(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestLogin(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	registerTestUser(t, svc, "login@example.com")

	resp, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "login@example.com",
		Password: "Testpass123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "login@example.com", resp.User.Email)
	assert.False(t, resp.User.LastLoginAt.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := setupTest(t)

	registerTestUser(t, svc, "wrong@example.com")

	_, err := svc.auth.Login(context.Background(), LoginRequest{
		Email:    "wrong@example.com",
		Password: "badpass",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := setupTest(t)

	_, err := svc.auth.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	require.Error(t, err)
	// Same error as a wrong password so the handler cannot leak existence.
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	registerTestUser(t, svc, "refresh@example.com")

	login, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "refresh@example.com",
		Password: "Testpass123",
	})
	require.NoError(t, err)

	refreshed, err := svc.auth.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is dead after rotation.
	_, err = svc.auth.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))

	// The new one works.
	_, err = svc.auth.Refresh(ctx, RefreshRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
}

func TestRefresh_Garbage(t *testing.T) {
	svc := setupTest(t)

	_, err := svc.auth.Refresh(context.Background(), RefreshRequest{RefreshToken: "bogus"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestLogout(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	registerTestUser(t, svc, "logout@example.com")

	login, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "logout@example.com",
		Password: "Testpass123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.auth.Logout(ctx, login.RefreshToken))

	// The refresh token no longer works.
	_, err = svc.auth.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)

	// Logging out again is a no-op.
	require.NoError(t, svc.auth.Logout(ctx, login.RefreshToken))
}

func TestVerifyAccessToken(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	user := registerTestUser(t, svc, "verify@example.com")

	login, err := svc.auth.Login(ctx, LoginRequest{
		Email:    "verify@example.com",
		Password: "Testpass123",
	})
	require.NoError(t, err)

	verified, claims, err := svc.auth.VerifyAccessToken(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = svc.auth.VerifyAccessToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestCreateAdmin(t *testing.T) {
	svc := setupTest(t)

	admin, err := svc.auth.CreateAdmin(context.Background(), "admin@example.com", "Adminpass123", "Admin")
	require.NoError(t, err)

	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsActive)
}
