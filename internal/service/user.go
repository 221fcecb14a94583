package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cookeryapp/cookery-server/internal/auth"
	"github.com/cookeryapp/cookery-server/internal/domain"
	domainerrors "github.com/cookeryapp/cookery-server/internal/errors"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// UserService serves the authenticated user's own profile.
type UserService struct {
	store  Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// UpdateProfileRequest lists the fields a user may change on their own
// account. Nil pointers leave the field untouched.
type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=5,max=1024"`
	Name     *string `json:"name"`
}

// GetProfile returns the user's own account.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the user's own account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if req.Email != nil {
		user.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("profile updated", "user_id", userID)
	}

	return user, nil
}
