package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kondate-app/backend/internal/mocks"
	"github.com/kondate-app/backend/internal/model"
)

func doAuthed(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaveRecipe(t *testing.T) {
	router, db, authService := setupTestRouter(t, &mocks.MockLLMClient{})
	userID := mustNewUUID(t)
	token := makeToken(t, authService, userID)

	w := doAuthed(router, "POST", "/api/v1/recipes", validProposalBody(), token)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		OK       bool   `json:"ok"`
		RecipeID string `json:"recipe_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.RecipeID)

	var recipeCount, listCount int64
	require.NoError(t, db.Model(&model.Recipe{}).Where("user_id = ?", userID).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&model.ShoppingList{}).Where("user_id = ?", userID).Count(&listCount).Error)
	assert.Equal(t, int64(1), recipeCount)
	assert.Equal(t, int64(1), listCount)
}

func TestSaveRecipeRejectsInvalidProposal(t *testing.T) {
	router, _, authService := setupTestRouter(t, &mocks.MockLLMClient{})
	token := makeToken(t, authService, mustNewUUID(t))

	w := doAuthed(router, "POST", "/api/v1/recipes",
		`{"title": "", "cook_time_min": 90, "ingredients": [], "steps": []}`, token)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "issues")
}

func TestSaveRecipeRequiresAuth(t *testing.T) {
	router, _, _ := setupTestRouter(t, &mocks.MockLLMClient{})

	w := doAuthed(router, "POST", "/api/v1/recipes", validProposalBody(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRecipesScopedToUser(t *testing.T) {
	router, _, authService := setupTestRouter(t, &mocks.MockLLMClient{})
	alice := makeToken(t, authService, mustNewUUID(t))
	bob := makeToken(t, authService, mustNewUUID(t))

	w := doAuthed(router, "POST", "/api/v1/recipes", validProposalBody(), alice)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}

	w = doAuthed(router, "GET", "/api/v1/recipes", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Ginger pork stir fry", resp.Recipes[0].Title)

	w = doAuthed(router, "GET", "/api/v1/recipes", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)
}

func TestGetRecipe(t *testing.T) {
	router, _, authService := setupTestRouter(t, &mocks.MockLLMClient{})
	token := makeToken(t, authService, mustNewUUID(t))

	w := doAuthed(router, "POST", "/api/v1/recipes", validProposalBody(), token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		RecipeID string `json:"recipe_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doAuthed(router, "GET", "/api/v1/recipes/"+created.RecipeID, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ginger pork stir fry", resp.Recipe.Title)
	assert.Len(t, resp.Recipe.Ingredients, 2)
}

func TestGetRecipeNotFound(t *testing.T) {
	router, _, authService := setupTestRouter(t, &mocks.MockLLMClient{})
	token := makeToken(t, authService, mustNewUUID(t))

	w := doAuthed(router, "GET", "/api/v1/recipes/"+mustNewUUID(t).String(), "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doAuthed(router, "GET", "/api/v1/recipes/not-a-uuid", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
