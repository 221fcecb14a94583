package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cookeryapp/cookery-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCurrentUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update current user",
		Description: "Updates the authenticated user's profile. Omitted fields are left unchanged.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCurrentUser)
}

// === DTOs ===

// UpdateProfileRequest is the request body for profile updates.
type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty" doc:"New email address"`
	Password *string `json:"password,omitempty" doc:"New password"`
	Name     *string `json:"name,omitempty" doc:"New display name"`
}

// UpdateProfileInput wraps the profile update request for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

// === Handlers ===

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleUpdateCurrentUser(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.UpdateProfile(ctx, userID, service.UpdateProfileRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Name:     input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUser(user)}, nil
}
