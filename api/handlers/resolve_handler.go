package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/app"
	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// ResolveHandler handles post resolution requests
type ResolveHandler struct {
	service *app.Service
	logger  *zap.Logger
}

// NewResolveHandler creates a new resolve handler
func NewResolveHandler(service *app.Service, logger *zap.Logger) *ResolveHandler {
	return &ResolveHandler{service: service, logger: logger}
}

// ResolveRequest represents a request to resolve a post URL
type ResolveRequest struct {
	URL string `json:"url" binding:"required"`
}

// Resolve handles POST /api/v1/resolve
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(resolveStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// resolveStatus maps resolve errors onto HTTP statuses. NoStructuredData,
// MissingAuthor and NoMediaFound mean the page did not carry usable post
// data; that is an upstream condition, not a bad request.
func resolveStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidURL), errors.Is(err, domain.ErrUnsupportedURL):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoStructuredData),
		errors.Is(err, domain.ErrMissingAuthor),
		errors.Is(err, domain.ErrNoMediaFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFetchPage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
