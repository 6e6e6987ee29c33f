package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// fakeFetcher simulates fetches with an optional delay, tracking how many
// are in flight at once. URLs present in fail cause an error.
type fakeFetcher struct {
	delay time.Duration
	fail  map[string]error

	mu       sync.Mutex
	inFlight int32
	maxSeen  int32
}

func newFakeFetcher(delay time.Duration) *fakeFetcher {
	return &fakeFetcher{delay: delay, fail: make(map[string]error)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, destPath string) error {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if cur > f.maxSeen {
		f.maxSeen = cur
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	if err, ok := f.fail[url]; ok {
		return err
	}
	return os.WriteFile(destPath, []byte("data"), 0644)
}

func (f *fakeFetcher) maxConcurrent() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxSeen
}

func carouselRequest(n int) *domain.DownloadRequest {
	req := &domain.DownloadRequest{
		Provider:  "instagram",
		Username:  "someuser",
		Shortcode: "ABC123",
	}
	for i := 1; i <= n; i++ {
		req.Items = append(req.Items, domain.MediaItem{
			ID:          fmt.Sprintf("ABC123_%d", i),
			Kind:        domain.KindImage,
			DownloadURL: fmt.Sprintf("https://cdn.example.com/%d.jpg", i),
			Extension:   "jpg",
			Index:       i,
		})
	}
	return req
}

func collectOutcomes(t *testing.T, ch <-chan domain.DownloadOutcome) []domain.DownloadOutcome {
	t.Helper()
	var all []domain.DownloadOutcome
	for outcome := range ch {
		all = append(all, outcome)
	}
	return all
}

func TestDownloadAll_AllItemsCompleted(t *testing.T) {
	dir := t.TempDir()
	fetcher := newFakeFetcher(0)
	engine := NewEngine(fetcher, 2, zap.NewNop())

	req := carouselRequest(3)
	ch, err := engine.DownloadAll(context.Background(), req, dir)
	require.NoError(t, err)

	outcomes := collectOutcomes(t, ch)
	assert.Len(t, outcomes, 6) // InProgress + terminal per item

	completed := terminalByItem(outcomes)
	require.Len(t, completed, 3)
	for _, outcome := range completed {
		assert.Equal(t, domain.StatusCompleted, outcome.Status)
		assert.Equal(t, 1.0, outcome.Progress)
		assert.FileExists(t, filepath.Join(dir, outcome.Filename))
	}

	assert.FileExists(t, filepath.Join(dir, "someuser_ABC123_01.jpg"))
	assert.FileExists(t, filepath.Join(dir, "someuser_ABC123_02.jpg"))
	assert.FileExists(t, filepath.Join(dir, "someuser_ABC123_03.jpg"))
}

func TestDownloadAll_ConcurrencyBound(t *testing.T) {
	dir := t.TempDir()
	fetcher := newFakeFetcher(50 * time.Millisecond)
	engine := NewEngine(fetcher, 2, zap.NewNop())

	ch, err := engine.DownloadAll(context.Background(), carouselRequest(5), dir)
	require.NoError(t, err)
	collectOutcomes(t, ch)

	assert.LessOrEqual(t, fetcher.maxConcurrent(), int32(2))
	assert.GreaterOrEqual(t, fetcher.maxConcurrent(), int32(1))
}

func TestDownloadAll_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	fetcher := newFakeFetcher(0)
	fetcher.fail["https://cdn.example.com/2.jpg"] = errors.New("connection refused")
	engine := NewEngine(fetcher, 2, zap.NewNop())

	ch, err := engine.DownloadAll(context.Background(), carouselRequest(5), dir)
	require.NoError(t, err)
	outcomes := collectOutcomes(t, ch)

	terminal := terminalByItem(outcomes)
	require.Len(t, terminal, 5)

	failed := terminal["ABC123_2"]
	assert.Equal(t, domain.StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "connection refused")

	for id, outcome := range terminal {
		if id == "ABC123_2" {
			continue
		}
		assert.Equal(t, domain.StatusCompleted, outcome.Status, "item %s", id)
	}
}

func TestDownloadAll_PerItemEventOrder(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(newFakeFetcher(0), 2, zap.NewNop())

	ch, err := engine.DownloadAll(context.Background(), carouselRequest(4), dir)
	require.NoError(t, err)
	outcomes := collectOutcomes(t, ch)

	seen := make(map[string][]domain.ItemStatus)
	for _, outcome := range outcomes {
		seen[outcome.ItemID] = append(seen[outcome.ItemID], outcome.Status)
	}
	for id, statuses := range seen {
		require.Len(t, statuses, 2, "item %s", id)
		assert.Equal(t, domain.StatusInProgress, statuses[0])
		assert.True(t, statuses[1].Terminal())
	}
}

func TestDownloadAll_DirectoryUnavailable(t *testing.T) {
	dir := t.TempDir()
	// A file where the target directory should be makes MkdirAll fail.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0644))

	engine := NewEngine(newFakeFetcher(0), 2, zap.NewNop())
	ch, err := engine.DownloadAll(context.Background(), carouselRequest(2), filepath.Join(blocked, "sub"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	assert.Nil(t, ch)
}

func TestDownloadAll_SiblingCollisionSerialized(t *testing.T) {
	// Two items with identical identity+shortcode+extension and no index
	// compute the same base filename; reservation must keep them apart.
	dir := t.TempDir()
	engine := NewEngine(newFakeFetcher(10*time.Millisecond), 2, zap.NewNop())

	req := &domain.DownloadRequest{
		Provider:  "instagram",
		Username:  "someuser",
		Shortcode: "XYZ",
		Items: []domain.MediaItem{
			{ID: "XYZ", Kind: domain.KindImage, DownloadURL: "https://cdn.example.com/a.jpg", Extension: "jpg"},
			{ID: "XYZ_v", Kind: domain.KindVideo, DownloadURL: "https://cdn.example.com/b.jpg", Extension: "jpg"},
		},
	}

	ch, err := engine.DownloadAll(context.Background(), req, dir)
	require.NoError(t, err)
	outcomes := collectOutcomes(t, ch)

	names := make(map[string]bool)
	for _, outcome := range outcomes {
		if outcome.Status == domain.StatusCompleted {
			names[outcome.Filename] = true
		}
	}
	require.Len(t, names, 2)
	assert.True(t, names["someuser_XYZ.jpg"])
	assert.True(t, names["someuser_XYZ__dup2.jpg"])
}

func TestDownloadAll_RetryAfterFailureReusesBaseName(t *testing.T) {
	// A failed item leaves nothing on disk, so re-submitting it must
	// resolve to the original filename, not a dedup variant.
	dir := t.TempDir()
	fetcher := newFakeFetcher(0)
	engine := NewEngine(fetcher, 2, zap.NewNop())

	req := &domain.DownloadRequest{
		Provider:  "instagram",
		Username:  "someuser",
		Shortcode: "XYZ",
		Items: []domain.MediaItem{
			{ID: "XYZ", Kind: domain.KindImage, DownloadURL: "https://cdn.example.com/a.jpg", Extension: "jpg"},
		},
	}

	fetcher.fail["https://cdn.example.com/a.jpg"] = errors.New("connection reset")
	ch, err := engine.DownloadAll(context.Background(), req, dir)
	require.NoError(t, err)
	first := terminalByItem(collectOutcomes(t, ch))["XYZ"]
	require.Equal(t, domain.StatusFailed, first.Status)
	assert.NoFileExists(t, filepath.Join(dir, "someuser_XYZ.jpg"))

	delete(fetcher.fail, "https://cdn.example.com/a.jpg")
	ch, err = engine.DownloadAll(context.Background(), req, dir)
	require.NoError(t, err)
	second := terminalByItem(collectOutcomes(t, ch))["XYZ"]

	require.Equal(t, domain.StatusCompleted, second.Status)
	assert.Equal(t, "someuser_XYZ.jpg", second.Filename)
	assert.FileExists(t, filepath.Join(dir, "someuser_XYZ.jpg"))
}

func TestDownloadAll_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	engine := NewEngine(newFakeFetcher(100*time.Millisecond), 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch, err := engine.DownloadAll(ctx, carouselRequest(3), dir)
	require.NoError(t, err)
	outcomes := collectOutcomes(t, ch)

	// Every item still reaches a terminal state; none hang. Items never
	// admitted emit just the one Failed event, with no filename claimed.
	require.Len(t, outcomes, 3)
	require.Len(t, terminalByItem(outcomes), 3)
	for _, outcome := range outcomes {
		assert.Equal(t, domain.StatusFailed, outcome.Status)
		assert.Empty(t, outcome.Filename)
	}
}

func terminalByItem(outcomes []domain.DownloadOutcome) map[string]domain.DownloadOutcome {
	terminal := make(map[string]domain.DownloadOutcome)
	for _, outcome := range outcomes {
		if outcome.Status.Terminal() {
			terminal[outcome.ItemID] = outcome
		}
	}
	return terminal
}
