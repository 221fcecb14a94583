package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTaxonomyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the authenticated user's tags, name descending",
		Tags:        []string{"Taxonomy"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns the authenticated user's ingredients, name descending",
		Tags:        []string{"Taxonomy"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListIngredients)
}

// === DTOs ===

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags, name descending"`
}

// ListTagsOutput wraps the tag list for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// ListIngredientsResponse contains a list of ingredients.
type ListIngredientsResponse struct {
	Ingredients []IngredientResponse `json:"ingredients" doc:"Ingredients, name descending"`
}

// ListIngredientsOutput wraps the ingredient list for Huma.
type ListIngredientsOutput struct {
	Body ListIngredientsResponse
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Taxonomy.ListTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: out}}, nil
}

func (s *Server) handleListIngredients(ctx context.Context, _ *struct{}) (*ListIngredientsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.services.Taxonomy.ListIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, IngredientResponse{ID: ing.ID, Name: ing.Name})
	}

	return &ListIngredientsOutput{Body: ListIngredientsResponse{Ingredients: out}}, nil
}
