package reports

import (
	"errors"
	"fmt"
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

func exportFormat(c *gin.Context) string {
	format := c.Query("format")
	if format == "" {
		format = FormatCSV
	}
	return format
}

func writeExport(c *gin.Context, data []byte, filename, mime string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 👥 Export Participants - GET /events/:id/participants/export?format=
func (h *Handler) ExportParticipants(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	data, filename, mime, err := h.Service.ExportParticipants(c.Request.Context(), viewerID, c.Param("id"), exportFormat(c))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, apperr.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can export participants"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	writeExport(c, data, filename, mime)
}

// ===========================
// 📆 Export My Events - GET /events/export?format=
func (h *Handler) ExportMyEvents(c *gin.Context) {
	viewerID, ok := middleware.GetViewerID(c)
	if !ok {
		return
	}

	data, filename, mime, err := h.Service.ExportMyEvents(c.Request.Context(), viewerID, exportFormat(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	writeExport(c, data, filename, mime)
}
