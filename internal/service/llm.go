package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fridgechef/backend/internal/logger"
	"github.com/fridgechef/backend/internal/models"
)

// recipeCount is the fixed number of recipes requested per generation.
const recipeCount = 3

// LLMService generates recipe candidates from a selected ingredient list via
// the upstream text model. Repeated calls with the same input may return
// different recipes; regenerate is simply a fresh call.
type LLMService struct {
	client ChatClient
	model  string
}

func NewLLMService(client ChatClient, model string) *LLMService {
	return &LLMService{client: client, model: model}
}

// GenerateRecipes asks the model for recipeCount recipes using the given
// ingredients. Dietary restrictions, when present, are embedded with a hard
// instruction that they must never be violated.
func (s *LLMService) GenerateRecipes(ctx context.Context, ingredients, restrictions []string) ([]models.RecipePayload, error) {
	if len(ingredients) == 0 {
		return nil, ErrEmptySelection
	}

	content, err := s.client.Chat(ctx, s.model, []ChatMessage{
		TextMessage(buildRecipePrompt(ingredients, restrictions)),
	})
	if err != nil {
		return nil, err
	}

	recipes, err := parseRecipes(content)
	if err != nil {
		logger.L.Error("failed to parse text model response",
			zap.Error(err),
			zap.String("raw_response", sanitizeBody([]byte(content))),
		)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamParse, err)
	}

	return recipes, nil
}

func buildRecipePrompt(ingredients, restrictions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d recipes that can be cooked with the following ingredients.\n\n", recipeCount)
	fmt.Fprintf(&b, "Ingredients: %s\n\n", strings.Join(ingredients, ", "))

	if len(restrictions) > 0 {
		fmt.Fprintf(&b, "The user has these dietary restrictions: %s.\n", strings.Join(restrictions, ", "))
		b.WriteString("Every recipe MUST respect these restrictions. Never suggest a recipe that violates them.\n\n")
	}

	b.WriteString(`Respond with a single JSON object in exactly this shape. Do not include any text outside the JSON:
{
  "recipes": [
    {
      "name": "Recipe name",
      "difficulty": "easy",
      "time": "15 minutes",
      "servings": "2 servings",
      "ingredients": [
        {"name": "ingredient name", "amount": "amount"}
      ],
      "steps": ["step 1", "step 2"],
      "missing_ingredients": ["missing ingredient"]
    }
  ]
}

difficulty is one of "easy", "medium", "hard".
missing_ingredients are basic ingredients the recipe needs that are not in the given list.`)

	return b.String()
}

// parseRecipes enforces the {"recipes": [...]} contract. A missing recipes
// array or a recipe without a name is rejected; optional fields are left for
// the consuming layer to default, never invented here.
func parseRecipes(content string) ([]models.RecipePayload, error) {
	var parsed struct {
		Recipes *[]models.RecipePayload `json:"recipes"`
	}
	if err := decodeStrict(stripJSONFence(content), &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %v", err)
	}
	if parsed.Recipes == nil {
		return nil, fmt.Errorf("response lacks a recipes array")
	}

	recipes := *parsed.Recipes
	for i, r := range recipes {
		if r.Name == "" {
			return nil, fmt.Errorf("recipe %d has no name", i)
		}
	}
	return recipes, nil
}
