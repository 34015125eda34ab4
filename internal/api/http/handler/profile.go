package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

// ProfileService defines profile read and update operations.
type ProfileService interface {
	Get(ctx context.Context, caller model.Caller) (model.ProfileView, error)
	Update(ctx context.Context, caller model.Caller, params model.UpdateProfileParams) (model.ProfileView, error)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Name        string `json:"name"`
}

// Profile handles HTTP endpoints for the caller's profile.
type Profile struct {
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Profile) caller(c *gin.Context) (model.Caller, bool) {
	caller, ok := h.contextManager.GetCallerFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return model.Caller{}, false
	}

	return caller, true
}

// Get returns the caller's identity merged with the profile record.
func (h *Profile) Get(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	view, err := h.profileService.Get(c.Request.Context(), caller)
	if err != nil {
		writeError(c, h.logger, profileGetErrors, "Profile handler: get profile failed", err,
			"user_id", caller.UserID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            view.Identity.ID,
		"email":         view.Identity.Email,
		"emailVerified": view.Identity.EmailVerified,
		"displayName":   nullable(view.Identity.DisplayName),
		"name":          nullable(view.Name),
	})
}

// Update changes the display name and merges the profile record.
func (h *Profile) Update(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, profileUpdateErrors, "Profile handler: invalid update body", model.ErrInvalidBody,
			"user_id", caller.UserID)
		return
	}

	view, err := h.profileService.Update(c.Request.Context(), caller, model.UpdateProfileParams{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Name:        req.Name,
	})
	if err != nil {
		writeError(c, h.logger, profileUpdateErrors, "Profile handler: update profile failed", err,
			"user_id", caller.UserID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"id":      view.Identity.ID,
		"email":   view.Identity.Email,
		"name":    nullable(view.Name),
	})
}
