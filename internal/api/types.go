package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fridgechef/backend/internal/models"
	"github.com/fridgechef/backend/internal/service"
)

// UserView is the user shape returned by the auth endpoints.
type UserView struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

func toUserView(u *models.User) UserView {
	restrictions := []string(u.DietaryRestrictions)
	if restrictions == nil {
		restrictions = []string{}
	}
	return UserView{
		ID:                  u.ID.String(),
		Email:               u.Email,
		DietaryRestrictions: restrictions,
	}
}

var errorStatus = map[error]int{
	service.ErrInvalidMedia:       http.StatusBadRequest,
	service.ErrInvalidEmail:       http.StatusBadRequest,
	service.ErrWeakPassword:       http.StatusBadRequest,
	service.ErrPayloadTooLarge:    http.StatusRequestEntityTooLarge,
	service.ErrEmptySelection:     http.StatusBadRequest,
	service.ErrUpstreamParse:      http.StatusBadGateway,
	service.ErrUpstreamTimeout:    http.StatusGatewayTimeout,
	service.ErrDuplicateEmail:     http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrNotAuthenticated:   http.StatusUnauthorized,
	service.ErrNotFound:           http.StatusNotFound,
	service.ErrInvalidRating:      http.StatusBadRequest,
}

// respondError maps service sentinels to HTTP statuses. Unknown errors become
// a generic 500; their detail stays in the logs, not the response.
func respondError(c *gin.Context, err error) {
	for sentinel, status := range errorStatus {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{"error": sentinel.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
