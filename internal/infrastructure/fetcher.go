package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// Fetcher downloads a single remote asset to a local path. The write is
// atomic: the body lands in a temp file in the destination directory, is
// synced to storage, and is renamed onto the destination as the last step.
// On any failure the destination path is left untouched.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewFetcher creates a new fetcher using the given HTTP client. userAgent,
// when non-empty, is sent on every request.
func NewFetcher(client *http.Client, userAgent string, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, userAgent: userAgent, logger: logger}
}

// Fetch downloads url to destPath
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	// Temp file lives next to the destination so the final rename stays on
	// one filesystem and is atomic.
	dir := filepath.Dir(destPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		f.discard(tmp, tmpPath)
		return fmt.Errorf("write body: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		f.discard(tmp, tmpPath)
		return fmt.Errorf("sync file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		f.discard(nil, tmpPath)
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		f.discard(nil, tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// discard is best-effort temp cleanup; a stray temp file on failure is an
// accepted outcome, a file at the destination path is not.
func (f *Fetcher) discard(tmp *os.File, path string) {
	if tmp != nil {
		tmp.Close()
	}
	if err := os.Remove(path); err != nil && f.logger != nil {
		f.logger.Debug("Failed to remove temp file",
			zap.String("path", path),
			zap.Error(err))
	}
}
