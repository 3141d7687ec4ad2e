package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridgechef/backend/internal/models"
)

// RecipeService persists a user's saved recipes and the append-only history
// of generation runs.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Save stores a chosen recipe for the user.
func (s *RecipeService) Save(ctx context.Context, userID uuid.UUID, recipe models.RecipePayload) (*models.SavedRecipe, error) {
	name := recipe.Name
	if name == "" {
		name = "Untitled recipe"
	}

	saved := models.SavedRecipe{
		UserID:     userID,
		RecipeName: name,
		RecipeData: recipe,
	}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// List returns the user's saved recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	var recipes []models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Update sets rating and/or notes on a saved recipe the user owns. A nil
// field is left unchanged.
func (s *RecipeService) Update(ctx context.Context, userID, id uuid.UUID, rating *int, notes *string) (*models.SavedRecipe, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}

	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if rating != nil {
		updates["rating"] = *rating
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		return &recipe, nil
	}

	if err := s.db.WithContext(ctx).Model(&recipe).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete permanently removes a saved recipe. Deleting an id the user does not
// own, or one already deleted, yields ErrNotFound.
func (s *RecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.SavedRecipe{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendHistory records a generation run. userID is nil for anonymous use.
func (s *RecipeService) AppendHistory(ctx context.Context, userID *uuid.UUID, ingredients []string, recipes []models.RecipePayload) error {
	if len(ingredients) == 0 {
		return fmt.Errorf("history entry requires a non-empty ingredient list")
	}

	entry := models.RecipeHistory{
		UserID:      userID,
		Ingredients: ingredients,
		Recipes:     recipes,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}
