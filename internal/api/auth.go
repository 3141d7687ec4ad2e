package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fridgechef/backend/config"
	"github.com/fridgechef/backend/internal/logger"
	"github.com/fridgechef/backend/internal/middleware"
	"github.com/fridgechef/backend/internal/service"
)

// SessionStore issues and revokes opaque session tokens.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Destroy(ctx context.Context, token string) error
}

// AuthHandler serves registration, login, logout and the current-user lookup.
type AuthHandler struct {
	auth     *service.AuthService
	sessions SessionStore
	profiles *service.ProfileService
	cookie   config.SessionConfig
}

func NewAuthHandler(auth *service.AuthService, sessions SessionStore, profiles *service.ProfileService, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		profiles: profiles,
		cookie:   cookie,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserView(user)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserView(user)})
}

// Logout handles POST /api/auth/logout. Always succeeds; an unknown token is
// already logged out.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			logger.L.Warn("failed to destroy session", zap.Error(err))
		}
	}

	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me handles GET /api/auth/me. Anonymous requests get {"user": null}.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		// Session points at a user that no longer exists; drop the
		// server-side session along with the cookie.
		if token := middleware.SessionToken(c); token != "" {
			if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
				logger.L.Warn("failed to destroy session", zap.Error(err))
			}
		}
		h.clearCookie(c)
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserView(user)})
}

func (h *AuthHandler) establishSession(c *gin.Context, userID uuid.UUID) error {
	token, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
	return nil
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.Secure, true)
}
