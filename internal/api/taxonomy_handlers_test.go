package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTags_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	resp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Empty(t, body.Tags)
}

func TestListTags_NameDescendingAndOwnerScoped(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")
	otherToken := ts.registerAndLogin(t, "other@example.com")

	ts.createRecipe(t, token, map[string]any{
		"title": "Salad",
		"price": "4.00",
		"tags":  []map[string]any{{"name": "Appetizer"}, {"name": "Vegan"}, {"name": "Dessert"}},
	})
	ts.createRecipe(t, otherToken, map[string]any{
		"title": "Cake",
		"price": "6.00",
		"tags":  []map[string]any{{"name": "NotYours"}},
	})

	resp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Len(t, body.Tags, 3)
	assert.Equal(t, "Vegan", body.Tags[0].Name)
	assert.Equal(t, "Dessert", body.Tags[1].Name)
	assert.Equal(t, "Appetizer", body.Tags[2].Name)
}

func TestListTags_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListIngredients_NameDescending(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerAndLogin(t, "cook@example.com")

	ts.createRecipe(t, token, map[string]any{
		"title": "Soup",
		"price": "3.00",
		"ingredients": []map[string]any{
			{"name": "Butter"}, {"name": "Salt"}, {"name": "Kale"},
		},
	})

	resp := ts.api.Get("/api/v1/ingredients", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListIngredientsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Len(t, body.Ingredients, 3)
	assert.Equal(t, "Salt", body.Ingredients[0].Name)
	assert.Equal(t, "Kale", body.Ingredients[1].Name)
	assert.Equal(t, "Butter", body.Ingredients[2].Name)
}

func TestListIngredients_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/ingredients")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
