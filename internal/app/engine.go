package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
	"github.com/LeSteak11/social-media-downloader/internal/naming"
)

// AssetFetcher fetches a single remote asset to a local path
type AssetFetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// Engine downloads the items of a DownloadRequest concurrently, bounded by
// an admission semaphore, and reports per-item progress on a channel.
//
// Items never affect one another: a failed item is reported and its
// siblings run to their own terminal state. There are no retries in the
// engine; retrying is a caller decision made by re-submitting a request
// containing only the failed items.
type Engine struct {
	fetcher AssetFetcher
	limit   int64
	logger  *zap.Logger

	// mu serializes filename reservation so two items with the same base
	// name cannot both observe "does not exist" and clobber each other.
	// A name stays claimed only while its item is in flight: on success
	// the file on disk takes over, and on failure the name is free again
	// so a retry of that item gets the same filename.
	mu       sync.Mutex
	reserved map[string]struct{}
}

// NewEngine creates a download engine. A concurrentLimit below 1 falls back
// to the default.
func NewEngine(fetcher AssetFetcher, concurrentLimit int, logger *zap.Logger) *Engine {
	if concurrentLimit < 1 {
		concurrentLimit = domain.DefaultConcurrentLimit
	}
	return &Engine{
		fetcher:  fetcher,
		limit:    int64(concurrentLimit),
		logger:   logger,
		reserved: make(map[string]struct{}),
	}
}

// DownloadAll fetches every item of the request into targetDir. It creates
// targetDir (recursively) first; failure there aborts the whole batch before
// any network activity. Otherwise it returns a channel that carries, per
// item, an InProgress event followed by exactly one terminal event, in
// arbitrary order across items, and closes once all items are terminal.
// Items cancelled while still waiting for admission skip InProgress and
// emit only their Failed event.
func (e *Engine) DownloadAll(ctx context.Context, req *domain.DownloadRequest, targetDir string) (<-chan domain.DownloadOutcome, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	e.logger.Info("Starting download batch",
		zap.String("shortcode", req.Shortcode),
		zap.Int("items", len(req.Items)),
		zap.String("dir", targetDir))

	// Buffered for every event the batch can emit, so item goroutines
	// never block on a slow consumer while holding a semaphore slot.
	out := make(chan domain.DownloadOutcome, 2*len(req.Items))
	sem := semaphore.NewWeighted(e.limit)

	var wg sync.WaitGroup
	for _, item := range req.Items {
		wg.Add(1)
		go func(item domain.MediaItem) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				out <- domain.DownloadOutcome{
					ItemID: item.ID,
					Status: domain.StatusFailed,
					Error:  fmt.Sprintf("cancelled before start: %v", err),
				}
				return
			}
			defer sem.Release(1)

			e.downloadOne(ctx, req, item, targetDir, out)
		}(item)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

func (e *Engine) downloadOne(ctx context.Context, req *domain.DownloadRequest, item domain.MediaItem, targetDir string, out chan<- domain.DownloadOutcome) {
	path := e.reservePath(targetDir, naming.BuildFilename(req.Username, req.Shortcode, item.Extension, item.Index))
	defer e.releasePath(path)
	filename := filepath.Base(path)

	out <- domain.DownloadOutcome{
		ItemID:   item.ID,
		Status:   domain.StatusInProgress,
		Progress: 0.0,
		Filename: filename,
	}

	if err := e.fetcher.Fetch(ctx, item.DownloadURL, path); err != nil {
		e.logger.Warn("Item download failed",
			zap.String("item", item.ID),
			zap.String("url", item.DownloadURL),
			zap.Error(err))
		out <- domain.DownloadOutcome{
			ItemID:   item.ID,
			Status:   domain.StatusFailed,
			Progress: 0.0,
			Error:    err.Error(),
		}
		return
	}

	e.logger.Info("Item downloaded",
		zap.String("item", item.ID),
		zap.String("file", filename))
	out <- domain.DownloadOutcome{
		ItemID:   item.ID,
		Status:   domain.StatusCompleted,
		Progress: 1.0,
		Filename: filename,
	}
}

// reservePath picks a collision-free path, counting both files on disk and
// names claimed by in-flight siblings.
func (e *Engine) reservePath(dir, filename string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	path := naming.ResolveUniquePathFunc(dir, filename, func(p string) bool {
		if _, taken := e.reserved[p]; taken {
			return true
		}
		_, err := os.Stat(p)
		return err == nil
	})
	e.reserved[path] = struct{}{}
	return path
}

// releasePath drops an in-flight reservation. Completed items stay
// protected by the on-disk existence check.
func (e *Engine) releasePath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.reserved, path)
}
