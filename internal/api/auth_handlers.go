package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Register new user",
		Description:   "Creates a new user account",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns access and refresh tokens",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a refresh token for a new token pair",
		Tags:        []string{"Authentication"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Revokes the session behind the given refresh token",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)
}

// === DTOs ===

// RegisterRequest is the request body for user registration. Field presence
// is checked by the service layer so that all validation failures share one
// error shape.
type RegisterRequest struct {
	Email    string `json:"email,omitempty" doc:"User email address"`
	Password string `json:"password,omitempty" doc:"User password"`
	Name     string `json:"name,omitempty" doc:"Display name"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email,omitempty" doc:"User email"`
	Password string `json:"password,omitempty" doc:"User password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty" doc:"Refresh token"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutRequest is the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty" doc:"Refresh token to revoke"`
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body LogoutRequest
}

// UserResponse contains user information in API responses.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"User email"`
	Name        string    `json:"name" doc:"Display name"`
	IsActive    bool      `json:"is_active" doc:"Whether the account may log in"`
	IsStaff     bool      `json:"is_staff" doc:"Whether the user has staff access"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update timestamp"`
	LastLoginAt time.Time `json:"last_login_at,omitzero" doc:"Last login timestamp"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// AuthResponse contains authentication tokens and user info.
type AuthResponse struct {
	AccessToken          string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken         string       `json:"refresh_token" doc:"Refresh token"`
	TokenType            string       `json:"token_type" doc:"Token type (Bearer)"`
	AccessTokenExpiresAt time.Time    `json:"access_token_expires_at" doc:"Access token expiry"`
	User                 UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
	user, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Name:     input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Refresh(ctx, service.RefreshRequest{
		RefreshToken: input.Body.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Logged out successfully"}}, nil
}

// === Helpers ===

func mapUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

func mapAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		AccessToken:          resp.AccessToken,
		RefreshToken:         resp.RefreshToken,
		TokenType:            "Bearer",
		AccessTokenExpiresAt: resp.AccessTokenExpiresAt,
		User:                 mapUser(resp.User),
	}
}
