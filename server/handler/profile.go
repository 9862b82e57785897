package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/plateful/plateful/model"
	"github.com/plateful/plateful/server/middlewares"
	"gorm.io/gorm"
)

// Me returns the authenticated user with its profile.
func (h *Handler) Me(c *gin.Context) {
	var user model.User
	result := h.DB.Preload("Profile").First(&user, "id = ?", middlewares.UserID(c))
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errNotFound("User not found"))
		return
	}
	if result.Error != nil {
		respondError(c, errInternal("Failed to load user", result.Error))
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetProfile returns the authenticated user's profile, 404 when none exists
// yet.
func (h *Handler) GetProfile(c *gin.Context) {
	var profile model.Profile
	result := h.DB.First(&profile, "user_id = ?", middlewares.UserID(c))
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errNotFound("Profile not found"))
		return
	}
	if result.Error != nil {
		respondError(c, errInternal("Failed to load profile", result.Error))
		return
	}

	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	AvatarUrl   *string `json:"avatarUrl"`
}

// UpsertProfile updates the authenticated user's profile, creating it on
// first write. Only fields present in the request are touched.
func (h *Handler) UpsertProfile(c *gin.Context) {
	userID := middlewares.UserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errValidation("invalid request body"))
		return
	}

	var profile model.Profile
	result := h.DB.First(&profile, "user_id = ?", userID)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errInternal("Failed to update profile", result.Error))
		return
	}

	if result.RowsAffected == 1 {
		updates := map[string]interface{}{}
		if req.DisplayName != nil {
			updates["display_name"] = *req.DisplayName
		}
		if req.Bio != nil {
			updates["bio"] = *req.Bio
		}
		if req.AvatarUrl != nil {
			updates["avatar_url"] = *req.AvatarUrl
		}
		if len(updates) > 0 {
			if err := h.DB.Model(&profile).Updates(updates).Error; err != nil {
				respondError(c, errInternal("Failed to update profile", err))
				return
			}
		}
		h.DB.First(&profile, "user_id = ?", userID)
		c.JSON(http.StatusOK, profile)
		return
	}

	profile = model.Profile{UserID: userID}
	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarUrl != nil {
		profile.AvatarUrl = *req.AvatarUrl
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		respondError(c, errInternal("Failed to update profile", err))
		return
	}

	c.JSON(http.StatusCreated, profile)
}
