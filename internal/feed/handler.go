package feed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📰 Feed - GET /feed?refresh=
func (h *Handler) GetFeed(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	snap, err := h.Service.Load(c.Request.Context(), viewerID, refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ===========================
// ➕ Join Event - POST /events/:id/join
// Goes through the feed service so the cached snapshot stays coherent;
// the response is the refreshed feed.
func (h *Handler) JoinEvent(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	snap, err := h.Service.Join(c.Request.Context(), viewerID, c.Param("id"), middleware.GetIPFromContext(c))
	if err != nil {
		event.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ===========================
// ➖ Leave Event - POST /events/:id/leave
func (h *Handler) LeaveEvent(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	snap, err := h.Service.Leave(c.Request.Context(), viewerID, c.Param("id"), middleware.GetIPFromContext(c))
	if err != nil {
		event.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ===========================
// 🔎 Events by Interest - GET /feed/search?interest_id=
func (h *Handler) SearchEvents(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	interestID := c.Query("interest_id")
	if interestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interest_id is required"})
		return
	}

	events, err := h.Service.EventsByInterest(c.Request.Context(), viewerID, interestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ===========================
// 🔎 Interest Search - GET /feed/interests?q=
func (h *Handler) SearchInterests(c *gin.Context) {
	if _, ok := middleware.GetViewerID(c); !ok {
		return
	}

	interests, err := h.Service.SearchInterests(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": interests})
}
