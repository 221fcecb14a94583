package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cookeryapp/cookery-server/internal/domain"
	domainerrors "github.com/cookeryapp/cookery-server/internal/errors"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// RecipeService implements recipe CRUD with user-scoped visibility and
// set-valued tag and ingredient associations.
type RecipeService struct {
	store  Store
	logger *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store Store, logger *slog.Logger) *RecipeService {
	return &RecipeService{store: store, logger: logger}
}

// NameRef references a tag or ingredient by name. Unknown names are created
// on the fly in the caller's namespace.
type NameRef struct {
	Name string `json:"name" validate:"required,max=255"`
}

// CreateRecipeRequest contains the data for a new recipe. Price uses decimal
// string form ("5.25") and is parsed to fixed-point hundredths.
type CreateRecipeRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	TimeMinutes int       `json:"time_minutes" validate:"gte=0"`
	Price       string    `json:"price" validate:"required"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Tags        []NameRef `json:"tags" validate:"omitempty,dive"`
	Ingredients []NameRef `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest contains a recipe update. Nil fields are left
// untouched; a non-nil empty Tags or Ingredients slice clears the set.
type UpdateRecipeRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int       `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *string    `json:"price"`
	Link        *string    `json:"link"`
	Description *string    `json:"description"`
	Tags        *[]NameRef `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]NameRef `json:"ingredients" validate:"omitempty,dive"`
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	recipes, err := s.store.ListRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns one of the user's recipes. Recipes owned by other users report
// not-found rather than forbidden.
func (s *RecipeService) Get(ctx context.Context, userID string, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// Create stores a new recipe owned by the user. Tag and ingredient names are
// resolved get-or-create within the user's namespace.
func (s *RecipeService) Create(ctx context.Context, userID string, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	price, err := domain.ParsePrice(req.Price)
	if err != nil {
		return nil, domainerrors.Validationf("price is invalid: %v", err)
	}

	recipe := &domain.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Link:        req.Link,
		Description: req.Description,
	}
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	// Names resolve get-or-create before the write; the recipe row and both
	// association sets then commit in one store transaction.
	tagIDs, err := s.resolveTagIDs(ctx, userID, req.Tags)
	if err != nil {
		return nil, err
	}
	ingredientIDs, err := s.resolveIngredientIDs(ctx, userID, req.Ingredients)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateRecipe(ctx, recipe, tagIDs, ingredientIDs); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("recipe created", "user_id", userID, "recipe_id", recipe.ID)
	}

	// Reload with associations in canonical order.
	return s.Get(ctx, userID, recipe.ID)
}

// Update applies a partial or full update to one of the user's recipes.
// Association keys replace the whole set when present; absent keys leave the
// set untouched. Ownership never changes.
func (s *RecipeService) Update(ctx context.Context, userID string, recipeID int64, req UpdateRecipeRequest) (*domain.Recipe, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		price, err := domain.ParsePrice(*req.Price)
		if err != nil {
			return nil, domainerrors.Validationf("price is invalid: %v", err)
		}
		recipe.Price = price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	recipe.UpdatedAt = time.Now()

	// Resolve replacement sets first so the row update and both junction
	// reconciliations commit in one store transaction. A nil set pointer
	// leaves that kind of association untouched.
	var tagIDs, ingredientIDs *[]int64
	if req.Tags != nil {
		ids, err := s.resolveTagIDs(ctx, userID, *req.Tags)
		if err != nil {
			return nil, err
		}
		tagIDs = &ids
	}
	if req.Ingredients != nil {
		ids, err := s.resolveIngredientIDs(ctx, userID, *req.Ingredients)
		if err != nil {
			return nil, err
		}
		ingredientIDs = &ids
	}

	if err := s.store.UpdateRecipe(ctx, recipe, tagIDs, ingredientIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	return s.Get(ctx, userID, recipeID)
}

// Delete removes one of the user's recipes. Associated tags and ingredients
// survive; only the links are dropped.
func (s *RecipeService) Delete(ctx context.Context, userID string, recipeID int64) error {
	if err := s.store.DeleteRecipe(ctx, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("recipe deleted", "user_id", userID, "recipe_id", recipeID)
	}
	return nil
}

// resolveTagIDs resolves tag names get-or-create within the user's
// namespace. Duplicate names in the request collapse to one id.
func (s *RecipeService) resolveTagIDs(ctx context.Context, userID string, refs []NameRef) ([]int64, error) {
	tagIDs := make([]int64, 0, len(refs))
	seen := make(map[int64]bool, len(refs))
	for _, ref := range refs {
		tag, _, err := s.store.FindOrCreateTag(ctx, userID, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", ref.Name, err)
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			tagIDs = append(tagIDs, tag.ID)
		}
	}
	return tagIDs, nil
}

// resolveIngredientIDs mirrors resolveTagIDs for the ingredient namespace.
func (s *RecipeService) resolveIngredientIDs(ctx context.Context, userID string, refs []NameRef) ([]int64, error) {
	ingredientIDs := make([]int64, 0, len(refs))
	seen := make(map[int64]bool, len(refs))
	for _, ref := range refs {
		ing, _, err := s.store.FindOrCreateIngredient(ctx, userID, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", ref.Name, err)
		}
		if !seen[ing.ID] {
			seen[ing.ID] = true
			ingredientIDs = append(ingredientIDs, ing.ID)
		}
	}
	return ingredientIDs, nil
}
