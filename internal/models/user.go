package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Email               string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string           `gorm:"not null" json:"-"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.DietaryRestrictions == nil {
		u.DietaryRestrictions = JSONBStringArray{}
	}
	return nil
}
