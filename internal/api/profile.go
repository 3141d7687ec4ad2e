package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fridgechef/backend/internal/middleware"
	"github.com/fridgechef/backend/internal/service"
)

// ProfileHandler serves PATCH /api/profile.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// UpdateProfile replaces the user's dietary-restriction tags.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.profiles.UpdateDietaryRestrictions(c.Request.Context(), userID, req.DietaryRestrictions); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
