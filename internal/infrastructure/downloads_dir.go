package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDownloadDir returns the user's downloads directory. It honors
// XDG_DOWNLOAD_DIR when set and falls back to ~/Downloads.
func DefaultDownloadDir() (string, error) {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find downloads directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}
