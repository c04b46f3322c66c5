package notification

import (
	"errors"
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
// 🔔 List Notifications - GET /notifications
func (h *Handler) ListNotifications(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	notifications, err := h.Service.List(c.Request.Context(), viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// ===========================
// 🔔 Mark Read - PATCH /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	if err := h.Service.MarkRead(c.Request.Context(), viewerID, c.Param("id")); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// ===========================
// 📱 Register Device Token - POST /notifications/device-tokens
func (h *Handler) RegisterDeviceToken(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	var token DeviceToken
	if err := c.ShouldBindJSON(&token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	token.UserID = viewerID

	if err := h.Service.RegisterDevice(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "device registered"})
}
