package event

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

// WriteError maps service errors to HTTP responses. The feed handler shares
// it for join/leave, which it fronts to keep its snapshot cache coherent.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, apperr.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can do that"})
	case errors.Is(err, ErrUnknownInterest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown interest"})
	case errors.Is(err, ErrNoInterestSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "interest is required"})
	case errors.Is(err, ErrEndBeforeStart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
	case errors.Is(err, ErrAlreadyJoined):
		c.JSON(http.StatusConflict, gin.H{"error": "already participating"})
	case errors.Is(err, ErrNotParticipant):
		c.JSON(http.StatusConflict, gin.H{"error": "not a participant"})
	case errors.Is(err, ErrOwnerCannotLeave):
		c.JSON(http.StatusConflict, gin.H{"error": "owner cannot leave own event"})
	case errors.Is(err, ErrBadConfirmToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired confirmation token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	created, err := h.Service.Create(c.Request.Context(), viewerID, req, middleware.GetIPFromContext(c))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": created})
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	e, err := h.Service.Get(c.Request.Context(), viewerID, c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": e})
}

// ===========================
// 🛠 Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	updated, err := h.Service.Update(c.Request.Context(), viewerID, c.Param("id"), req, middleware.GetIPFromContext(c))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": updated})
}

// ===========================
// ❌ Request Delete - POST /events/:id/delete-request
func (h *Handler) RequestDelete(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	resp, err := h.Service.RequestDelete(c.Request.Context(), viewerID, c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===========================
// ❌ Confirm Delete - DELETE /events/:id?confirm_token=
func (h *Handler) DeleteEvent(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	token := c.Query("confirm_token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirm_token is required"})
		return
	}

	if err := h.Service.ConfirmDelete(c.Request.Context(), viewerID, c.Param("id"), token, middleware.GetIPFromContext(c)); err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
