package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cookeryapp/cookery-server/internal/domain"
	domainerrors "github.com/cookeryapp/cookery-server/internal/errors"
	"github.com/cookeryapp/cookery-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns the authenticated user's recipes, newest first",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Description:   "Creates a new recipe owned by the authenticated user",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns one of the authenticated user's recipes by ID",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceRecipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Replace recipe",
		Description: "Replaces a recipe. Omitted optional fields are cleared.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReplaceRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Partially updates a recipe. Omitted fields are left unchanged.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}",
		Summary:       "Delete recipe",
		Description:   "Deletes one of the authenticated user's recipes",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// NameRef references a tag or ingredient by name.
type NameRef struct {
	Name string `json:"name,omitempty" doc:"Name to attach; created under the caller's account if new"`
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// IngredientResponse contains ingredient data in API responses.
type IngredientResponse struct {
	ID   int64  `json:"id" doc:"Ingredient ID"`
	Name string `json:"name" doc:"Ingredient name"`
}

// RecipeResponse contains recipe data in API responses.
type RecipeResponse struct {
	ID          int64                `json:"id" doc:"Recipe ID"`
	Title       string               `json:"title" doc:"Recipe title"`
	TimeMinutes int                  `json:"time_minutes" doc:"Preparation time in minutes"`
	Price       string               `json:"price" doc:"Price as a decimal string (e.g. 5.25)"`
	Link        string               `json:"link,omitempty" doc:"External link"`
	Description string               `json:"description,omitempty" doc:"Free-form description"`
	Tags        []TagResponse        `json:"tags" doc:"Attached tags"`
	Ingredients []IngredientResponse `json:"ingredients" doc:"Attached ingredients"`
	CreatedAt   time.Time            `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time            `json:"updated_at" doc:"Last update timestamp"`
}

// RecipeOutput wraps a single recipe response for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// ListRecipesResponse contains a list of recipes.
type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"Recipes, newest first"`
}

// ListRecipesOutput wraps the recipe list for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// CreateRecipeRequest is the request body for recipe creation.
type CreateRecipeRequest struct {
	Title       string    `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes *int      `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price       string    `json:"price,omitempty" doc:"Price as a decimal string (e.g. 5.25)"`
	Link        string    `json:"link,omitempty" doc:"External link"`
	Description string    `json:"description,omitempty" doc:"Free-form description"`
	Tags        []NameRef `json:"tags,omitempty" doc:"Tags to attach"`
	Ingredients []NameRef `json:"ingredients,omitempty" doc:"Ingredients to attach"`
	User        string    `json:"user,omitempty" doc:"Ignored; ownership comes from the access token"`
}

// CreateRecipeInput wraps the create request for Huma.
type CreateRecipeInput struct {
	Body CreateRecipeRequest
}

// GetRecipeInput identifies a recipe by path ID.
type GetRecipeInput struct {
	ID int64 `path:"id" doc:"Recipe ID"`
}

// ReplaceRecipeInput wraps a full-replacement update for Huma.
type ReplaceRecipeInput struct {
	ID   int64 `path:"id" doc:"Recipe ID"`
	Body CreateRecipeRequest
}

// UpdateRecipeRequest is the request body for partial recipe updates.
// Omitted fields are left unchanged; an empty tags or ingredients array
// detaches everything.
type UpdateRecipeRequest struct {
	Title       *string    `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes *int       `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price       *string    `json:"price,omitempty" doc:"Price as a decimal string"`
	Link        *string    `json:"link,omitempty" doc:"External link"`
	Description *string    `json:"description,omitempty" doc:"Free-form description"`
	Tags        *[]NameRef `json:"tags,omitempty" doc:"Replacement tag set"`
	Ingredients *[]NameRef `json:"ingredients,omitempty" doc:"Replacement ingredient set"`
	User        string     `json:"user,omitempty" doc:"Ignored; ownership never changes"`
}

// UpdateRecipeInput wraps the partial update for Huma.
type UpdateRecipeInput struct {
	ID   int64 `path:"id" doc:"Recipe ID"`
	Body UpdateRecipeRequest
}

// DeleteRecipeInput identifies a recipe to delete.
type DeleteRecipeInput struct {
	ID int64 `path:"id" doc:"Recipe ID"`
}

// DeleteRecipeOutput is the empty response for a successful delete.
type DeleteRecipeOutput struct{}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*ListRecipesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Recipe.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, mapRecipe(r))
	}

	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: out}}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if input.Body.TimeMinutes == nil {
		return nil, domainerrors.Validation("time_minutes is required")
	}

	recipe, err := s.services.Recipe.Create(ctx, userID, service.CreateRecipeRequest{
		Title:       input.Body.Title,
		TimeMinutes: *input.Body.TimeMinutes,
		Price:       input.Body.Price,
		Link:        input.Body.Link,
		Description: input.Body.Description,
		Tags:        mapNameRefs(input.Body.Tags),
		Ingredients: mapNameRefs(input.Body.Ingredients),
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *GetRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipe.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleReplaceRecipe(ctx context.Context, input *ReplaceRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if input.Body.Title == "" {
		return nil, domainerrors.Validation("title is required")
	}
	if input.Body.TimeMinutes == nil {
		return nil, domainerrors.Validation("time_minutes is required")
	}
	if input.Body.Price == "" {
		return nil, domainerrors.Validation("price is required")
	}

	// Full replacement: every scalar field is written, clearing omitted
	// optional ones. Tag and ingredient sets are replaced only when the
	// arrays are present in the body.
	req := service.UpdateRecipeRequest{
		Title:       &input.Body.Title,
		TimeMinutes: input.Body.TimeMinutes,
		Price:       &input.Body.Price,
		Link:        &input.Body.Link,
		Description: &input.Body.Description,
	}
	if input.Body.Tags != nil {
		tags := mapNameRefs(input.Body.Tags)
		req.Tags = &tags
	}
	if input.Body.Ingredients != nil {
		ingredients := mapNameRefs(input.Body.Ingredients)
		req.Ingredients = &ingredients
	}

	recipe, err := s.services.Recipe.Update(ctx, userID, input.ID, req)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	req := service.UpdateRecipeRequest{
		Title:       input.Body.Title,
		TimeMinutes: input.Body.TimeMinutes,
		Price:       input.Body.Price,
		Link:        input.Body.Link,
		Description: input.Body.Description,
	}
	if input.Body.Tags != nil {
		tags := mapNameRefs(*input.Body.Tags)
		req.Tags = &tags
	}
	if input.Body.Ingredients != nil {
		ingredients := mapNameRefs(*input.Body.Ingredients)
		req.Ingredients = &ingredients
	}

	recipe, err := s.services.Recipe.Update(ctx, userID, input.ID, req)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *DeleteRecipeInput) (*DeleteRecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &DeleteRecipeOutput{}, nil
}

// === Helpers ===

func mapNameRefs(refs []NameRef) []service.NameRef {
	if refs == nil {
		return nil
	}
	out := make([]service.NameRef, 0, len(refs))
	for _, ref := range refs {
		out = append(out, service.NameRef{Name: ref.Name})
	}
	return out
}

func mapRecipe(r *domain.Recipe) RecipeResponse {
	tags := make([]TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, TagResponse{ID: t.ID, Name: t.Name})
	}

	ingredients := make([]IngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, IngredientResponse{ID: ing.ID, Name: ing.Name})
	}

	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.String(),
		Link:        r.Link,
		Description: r.Description,
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
