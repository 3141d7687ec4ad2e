package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgechef/backend/internal/models"
	"github.com/fridgechef/backend/internal/testhelpers"
)

func TestMigrateAgainstPostgres(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, HealthCheck(context.Background(), db))

	t.Run("jsonb columns round-trip", func(t *testing.T) {
		user := models.User{
			Email:               "it@example.com",
			PasswordHash:        "x",
			DietaryRestrictions: models.JSONBStringArray{"vegan", "gluten-free"},
		}
		require.NoError(t, db.Create(&user).Error)

		recipe := models.SavedRecipe{
			UserID:     user.ID,
			RecipeName: "Carrot omelette",
			RecipeData: models.RecipePayload{
				Name:        "Carrot omelette",
				Difficulty:  "easy",
				Ingredients: []models.RecipeIngredient{{Name: "carrot", Amount: "1"}},
				Steps:       []string{"grate", "fry"},
			},
		}
		require.NoError(t, db.Create(&recipe).Error)

		var loadedUser models.User
		require.NoError(t, db.First(&loadedUser, "id = ?", user.ID).Error)
		assert.Equal(t, models.JSONBStringArray{"vegan", "gluten-free"}, loadedUser.DietaryRestrictions)

		var loadedRecipe models.SavedRecipe
		require.NoError(t, db.First(&loadedRecipe, "id = ?", recipe.ID).Error)
		assert.Equal(t, []string{"grate", "fry"}, loadedRecipe.RecipeData.Steps)
	})

	t.Run("email uniqueness is enforced by the schema", func(t *testing.T) {
		first := models.User{Email: "dup@example.com", PasswordHash: "x"}
		require.NoError(t, db.Create(&first).Error)

		second := models.User{Email: "dup@example.com", PasswordHash: "y"}
		assert.Error(t, db.Create(&second).Error)
	})

	t.Run("rating check constraint", func(t *testing.T) {
		user := models.User{Email: "rating@example.com", PasswordHash: "x"}
		require.NoError(t, db.Create(&user).Error)

		bad := 9
		recipe := models.SavedRecipe{
			UserID:     user.ID,
			RecipeName: "Bad rating",
			RecipeData: models.RecipePayload{Name: "Bad rating"},
			Rating:     &bad,
		}
		assert.Error(t, db.Create(&recipe).Error)
	})

	t.Run("history user reference is nullable", func(t *testing.T) {
		entry := models.RecipeHistory{
			Ingredients: models.JSONBStringArray{"egg"},
			Recipes:     models.RecipePayloadList{{Name: "Egg drop soup"}},
		}
		require.NoError(t, db.Create(&entry).Error)

		var loaded models.RecipeHistory
		require.NoError(t, db.First(&loaded, "id = ?", entry.ID).Error)
		assert.Nil(t, loaded.UserID)
	})
}
