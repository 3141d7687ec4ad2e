package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fridgechef/backend/internal/middleware"
	"github.com/fridgechef/backend/internal/models"
	"github.com/fridgechef/backend/internal/service"
)

// RecipeHandler serves the SavedRecipe CRUD under /api/recipes. Every route
// requires an authenticated user.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// ListRecipes handles GET /api/recipes, newest first.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipes, err := h.recipes.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type saveRecipeRequest struct {
	RecipeData models.RecipePayload `json:"recipe_data" binding:"required"`
}

// SaveRecipe handles POST /api/recipes.
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_data is required"})
		return
	}

	saved, err := h.recipes.Save(c.Request.Context(), userID, req.RecipeData)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "recipe": saved})
}

type updateRecipeRequest struct {
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

// UpdateRecipe handles PATCH /api/recipes/:id.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, recipeID, req.Rating, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// DeleteRecipe handles DELETE /api/recipes/:id. Deletes are permanent; a
// second delete of the same id is a 404.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
