package interest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🔍 Interest Catalog - GET /interests
func (h *Handler) ListInterests(c *gin.Context) {
	interests, err := h.Service.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": interests})
}
