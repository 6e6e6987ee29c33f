package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	providerIDs []string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(providerIDs []string) *HealthHandler {
	return &HealthHandler{providerIDs: providerIDs}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Providers []string `json:"providers"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   "1.0.0",
		Providers: h.providerIDs,
	})
}
