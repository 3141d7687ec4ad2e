package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fridgechef/backend/internal/logger"
	"github.com/fridgechef/backend/internal/middleware"
	"github.com/fridgechef/backend/internal/models"
	"github.com/fridgechef/backend/internal/service"
)

// RecipeGenerator produces recipe candidates for an ingredient selection.
type RecipeGenerator interface {
	GenerateRecipes(ctx context.Context, ingredients, restrictions []string) ([]models.RecipePayload, error)
}

// GenerateHandler serves POST /api/generate-recipe. Anonymous use is allowed;
// a logged-in user's dietary restrictions are applied automatically.
type GenerateHandler struct {
	generator RecipeGenerator
	profiles  *service.ProfileService
	recipes   *service.RecipeService
}

func NewGenerateHandler(generator RecipeGenerator, profiles *service.ProfileService, recipes *service.RecipeService) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		profiles:  profiles,
		recipes:   recipes,
	}
}

type generateRequest struct {
	Ingredients []string `json:"ingredients"`
}

// GenerateRecipe handles one generation run and appends it to the history.
func (h *GenerateHandler) GenerateRecipe(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a JSON body with an ingredients array is required"})
		return
	}
	if len(req.Ingredients) == 0 {
		respondError(c, service.ErrEmptySelection)
		return
	}

	var restrictions []string
	userID, authenticated := middleware.UserID(c)
	if authenticated {
		if user, err := h.profiles.Get(c.Request.Context(), userID); err == nil {
			restrictions = user.DietaryRestrictions
		}
	}

	recipes, err := h.generator.GenerateRecipes(c.Request.Context(), req.Ingredients, restrictions)
	if err != nil {
		respondError(c, err)
		return
	}

	// Defaults the generator deliberately leaves to this layer.
	for i := range recipes {
		if recipes[i].Difficulty == "" {
			recipes[i].Difficulty = "medium"
		}
		if recipes[i].Steps == nil {
			recipes[i].Steps = []string{}
		}
	}

	var historyUser *uuid.UUID
	if authenticated {
		historyUser = &userID
	}
	if err := h.recipes.AppendHistory(c.Request.Context(), historyUser, req.Ingredients, recipes); err != nil {
		// History is best-effort; the generated recipes still go back.
		logger.L.Warn("failed to append recipe history", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
