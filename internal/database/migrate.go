package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fridgechef/backend/internal/logger"
	"github.com/fridgechef/backend/internal/models"
)

// Migrate applies the schema for all persistent models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.SavedRecipe{},
		&models.RecipeHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.L.Info("database migrations applied")
	return nil
}
