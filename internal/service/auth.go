// Package service implements the application's business logic on top of the
// store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cookeryapp/cookery-server/internal/auth"
	"github.com/cookeryapp/cookery-server/internal/domain"
	domainerrors "github.com/cookeryapp/cookery-server/internal/errors"
	"github.com/cookeryapp/cookery-server/internal/id"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// Store is the persistence interface the services depend on.
type Store interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	CreateRecipe(ctx context.Context, r *domain.Recipe, tagIDs, ingredientIDs []int64) error
	GetRecipe(ctx context.Context, userID string, recipeID int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, r *domain.Recipe, tagIDs, ingredientIDs *[]int64) error
	DeleteRecipe(ctx context.Context, userID string, recipeID int64) error

	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)
	FindOrCreateTag(ctx context.Context, userID, name string) (*domain.Tag, bool, error)
	ListIngredients(ctx context.Context, userID string) ([]*domain.Ingredient, error)
	FindOrCreateIngredient(ctx context.Context, userID, name string) (*domain.Ingredient, bool, error)
}

// AuthService handles registration, login, token refresh, and logout.
type AuthService struct {
	store        Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	Name     string `json:"name"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest contains the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse contains authentication tokens and user data.
type AuthResponse struct {
	User                 *domain.User `json:"user"`
	AccessToken          string       `json:"access_token"`
	RefreshToken         string       `json:"refresh_token"`
	AccessTokenExpiresAt time.Time    `json:"access_token_expires_at"`
}

// Register creates a new user account. The stored email has its domain
// portion lowercased so lookups are case-insensitive on the domain.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        domain.NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Name:         req.Name,
		IsActive:     true,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user registered", "user_id", userID)
	}

	return user, nil
}

// Login authenticates a user and creates a new refresh session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether the email exists.
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	if !user.IsActive {
		return nil, domainerrors.Forbidden("account is disabled")
	}

	user.LastLoginAt = time.Now()
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		// Log but don't fail login.
		if s.logger != nil {
			s.logger.Warn("failed to update last login time", "user_id", user.ID, "error", err)
		}
	}

	resp, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("user logged in", "user_id", user.ID)
	}

	return resp, nil
}

// Refresh rotates a refresh token: the presented token's session gets a new
// token and expiry, and a fresh access token is issued.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if session.IsExpired() {
		// Expired sessions are dead; remove eagerly.
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, domainerrors.TokenExpired("refresh token expired")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return nil, domainerrors.Forbidden("account is disabled")
	}

	newRefreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session.RefreshTokenHash = auth.HashRefreshToken(newRefreshToken)
	session.ExpiresAt = time.Now().Add(s.tokenService.RefreshTokenDuration())
	session.Touch()
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		User:                 user,
		AccessToken:          accessToken,
		RefreshToken:         newRefreshToken,
		AccessTokenExpiresAt: time.Now().Add(s.tokenService.AccessTokenDuration()),
	}, nil
}

// Logout revokes the session behind a refresh token. Unknown tokens are
// treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup session: %w", err)
	}
	return s.store.DeleteSession(ctx, session.ID)
}

// VerifyAccessToken validates a token and returns the associated user.
// Used by authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, errors.New("user not found")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, errors.New("account is disabled")
	}

	return user, claims, nil
}

// CreateAdmin creates a staff superuser account. Used by the createadmin
// command.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name string) (*domain.User, error) {
	req := RegisterRequest{Email: email, Password: password, Name: name}
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        domain.NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// createSession stores a new refresh session and issues the token pair.
func (s *AuthService) createSession(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("session")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokenService.RefreshTokenDuration()),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AuthResponse{
		User:                 user,
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		AccessTokenExpiresAt: now.Add(s.tokenService.AccessTokenDuration()),
	}, nil
}

// formatValidationError converts validator errors to user-friendly domain errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// Return first validation error as a domain error
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return domainerrors.Validationf("%s is required", field)
			case "email":
				return domainerrors.Validationf("%s must be a valid email address", field)
			case "min":
				return domainerrors.Validationf("%s must be at least %s characters", field, e.Param())
			case "max":
				return domainerrors.Validationf("%s exceeds maximum length of %s characters", field, e.Param())
			case "gte":
				return domainerrors.Validationf("%s must be at least %s", field, e.Param())
			case "dive":
				return domainerrors.Validationf("%s contains an invalid entry", field)
			default:
				return domainerrors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}
