package user

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matty-app/matty-backend/internal/apperr"
	"github.com/matty-app/matty-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 👤 Get Profile - GET /profile
func (h *Handler) GetProfile(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	profile, err := h.Service.Profile(c.Request.Context(), viewerID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ===========================
// ✏️ Update Profile - PATCH /profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	u, err := h.Service.UpdateProfile(c.Request.Context(), viewerID, req, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

// ===========================
// 🏷 Get Tagged Interests - GET /profile/interests
func (h *Handler) GetInterests(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	tagged, err := h.Service.TaggedInterests(c.Request.Context(), viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": tagged})
}

// ===========================
// 🏷 Update Interests - PUT /profile/interests
func (h *Handler) UpdateInterests(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	var req UpdateInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	confirmed, err := h.Service.UpdateInterests(c.Request.Context(), viewerID, req.InterestIDs, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update interests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": confirmed})
}

// ===========================
// 🖼 Get Profile Image - GET /profile/image
func (h *Handler) GetProfileImage(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	data, err := h.Service.ProfileImage(viewerID)
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile image"})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

// ===========================
// 🖼 Upload Profile Image - PUT /profile/image (raw body)
func (h *Handler) PutProfileImage(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty image body"})
		return
	}

	if err := h.Service.SaveProfileImage(c.Request.Context(), viewerID, data, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile image saved"})
}

// ===========================
// 🖼 Delete Profile Image - DELETE /profile/image
func (h *Handler) DeleteProfileImage(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteProfileImage(c.Request.Context(), viewerID, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNoImage) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile image"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile image deleted"})
}
