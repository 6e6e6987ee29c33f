package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// NotificationService sends desktop notifications when a download batch
// finishes. Disabled by default; the CLI enables it from config.
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{config: config, logger: logger}
}

// NotifyBatchComplete announces a finished batch
func (n *NotificationService) NotifyBatchComplete(completed, failed int) {
	title := "Download complete"
	message := fmt.Sprintf("%d file(s) downloaded", completed)
	if failed > 0 {
		title = "Download finished with errors"
		message = fmt.Sprintf("%d file(s) downloaded, %d failed", completed, failed)
	}
	if err := n.Send(title, message); err != nil {
		n.logger.Warn("Failed to send notification", zap.Error(err))
	}
}

// Send sends a notification using the configured method
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title))
		return nil
	}

	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		return exec.Command("osascript", "-e", script).Run()
	case "notify-send":
		return exec.Command("notify-send", title, message).Run()
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}
}
