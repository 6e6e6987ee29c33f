package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// appSubdir namespaces downloads under the caller's base directory.
const appSubdir = "social-media-downloader"

// Service composes providers, the download engine and the optional history
// repository behind the two boundary operations: Resolve and Download.
type Service struct {
	providers []domain.Provider
	engine    *Engine
	history   domain.HistoryRepository // nil disables history recording
	logger    *zap.Logger
}

// NewService creates the application service
func NewService(providers []domain.Provider, engine *Engine, history domain.HistoryRepository, logger *zap.Logger) *Service {
	return &Service{
		providers: providers,
		engine:    engine,
		history:   history,
		logger:    logger,
	}
}

// Resolve turns a post URL into its ordered media list using the first
// provider that matches the URL.
func (s *Service) Resolve(ctx context.Context, url string) (*domain.ResolveResult, error) {
	provider := s.providerFor(url)
	if provider == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedURL, url)
	}

	s.logger.Info("Resolving post",
		zap.String("provider", provider.ID()),
		zap.String("url", url))

	result, err := provider.Resolve(ctx, url)
	if err != nil {
		s.logger.Warn("Resolve failed",
			zap.String("url", url),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Post resolved",
		zap.String("shortcode", result.Shortcode),
		zap.String("username", result.Username),
		zap.Int("items", len(result.Items)))
	return result, nil
}

// Download fetches the requested items under
// baseDir/social-media-downloader/<provider-id>/ and streams outcomes back
// to the caller. When history is configured, every terminal outcome is
// recorded as it passes through.
func (s *Service) Download(ctx context.Context, req *domain.DownloadRequest, baseDir string) (<-chan domain.DownloadOutcome, error) {
	targetDir := filepath.Join(baseDir, appSubdir, req.Provider)

	outcomes, err := s.engine.DownloadAll(ctx, req, targetDir)
	if err != nil {
		return nil, err
	}
	if s.history == nil {
		return outcomes, nil
	}

	batchID := uuid.New().String()
	urls := make(map[string]string, len(req.Items))
	for _, item := range req.Items {
		urls[item.ID] = item.DownloadURL
	}

	recorded := make(chan domain.DownloadOutcome, cap(outcomes))
	go func() {
		defer close(recorded)
		for outcome := range outcomes {
			if outcome.Status.Terminal() {
				s.record(batchID, req.Provider, urls[outcome.ItemID], outcome)
			}
			recorded <- outcome
		}
	}()
	return recorded, nil
}

func (s *Service) record(batchID, provider, url string, outcome domain.DownloadOutcome) {
	entry := &domain.HistoryEntry{
		ID:       uuid.New().String(),
		BatchID:  batchID,
		ItemID:   outcome.ItemID,
		Provider: provider,
		URL:      url,
		Filename: outcome.Filename,
		Status:   outcome.Status,
		Error:    outcome.Error,
	}
	if err := s.history.Create(entry); err != nil {
		s.logger.Error("Failed to record history entry",
			zap.String("item", outcome.ItemID),
			zap.Error(err))
	}
}

// History returns the most recent history entries, newest first.
func (s *Service) History(limit int) ([]*domain.HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.FindRecent(limit)
}

// ProviderIDs returns the identifiers of the registered providers.
func (s *Service) ProviderIDs() []string {
	ids := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		ids = append(ids, p.ID())
	}
	return ids
}

func (s *Service) providerFor(url string) domain.Provider {
	for _, p := range s.providers {
		if p.Matches(url) {
			return p
		}
	}
	return nil
}
