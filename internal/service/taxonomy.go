package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cookeryapp/cookery-server/internal/domain"
)

// TaxonomyService serves a user's tag and ingredient vocabularies.
type TaxonomyService struct {
	store  Store
	logger *slog.Logger
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(store Store, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{store: store, logger: logger}
}

// ListTags returns the user's tags in reverse name order.
func (s *TaxonomyService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// ListIngredients returns the user's ingredients in reverse name order.
func (s *TaxonomyService) ListIngredients(ctx context.Context, userID string) ([]*domain.Ingredient, error) {
	ingredients, err := s.store.ListIngredients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}
