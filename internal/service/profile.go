package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridgechef/backend/internal/models"
)

// ProfileService manages the user's dietary-restriction tags.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get loads the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return &user, nil
}

// UpdateDietaryRestrictions replaces the user's restriction tag set.
func (s *ProfileService) UpdateDietaryRestrictions(ctx context.Context, userID uuid.UUID, restrictions []string) error {
	if restrictions == nil {
		restrictions = []string{}
	}
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("dietary_restrictions", models.JSONBStringArray(restrictions))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotAuthenticated
	}
	return nil
}
