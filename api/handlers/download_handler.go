package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/app"
	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// DownloadHandler handles download requests, streaming per-item progress
// back to the caller as server-sent events.
type DownloadHandler struct {
	service *app.Service
	baseDir string
	logger  *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(service *app.Service, baseDir string, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{service: service, baseDir: baseDir, logger: logger}
}

// DownloadBody represents a request to download a selection of items
type DownloadBody struct {
	Provider  string             `json:"provider" binding:"required"`
	Username  string             `json:"username"`
	Shortcode string             `json:"shortcode" binding:"required"`
	Items     []domain.MediaItem `json:"mediaItems" binding:"required,min=1"`
}

// Download handles POST /api/v1/downloads. The response is an SSE stream
// with one "progress" event per outcome; the stream ends when every item
// has reached a terminal state.
func (h *DownloadHandler) Download(c *gin.Context) {
	var body DownloadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &domain.DownloadRequest{
		Provider:  body.Provider,
		Username:  body.Username,
		Shortcode: body.Shortcode,
		Items:     body.Items,
	}

	outcomes, err := h.service.Download(c.Request.Context(), req, h.baseDir)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryUnavailable) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		outcome, ok := <-outcomes
		if !ok {
			return false
		}
		c.SSEvent("progress", outcome)
		return true
	})
}
