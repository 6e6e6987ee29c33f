package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
	"github.com/LeSteak11/social-media-downloader/internal/infrastructure"
)

// BuildService wires providers, fetcher, engine and history repository from
// configuration. It is shared by the CLI and the server entry points.
func BuildService(config *domain.Config, logger *zap.Logger) (*Service, error) {
	pageClient := &http.Client{}
	assetClient := &http.Client{Timeout: config.Download.FetchTimeout}

	providers := []domain.Provider{
		infrastructure.NewInstagramProvider(pageClient, config.Instagram.PageUserAgent, logger),
	}

	fetcher := infrastructure.NewFetcher(assetClient, config.Download.UserAgent, logger)
	engine := NewEngine(fetcher, config.Download.ConcurrentLimit, logger)

	var history domain.HistoryRepository
	if config.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(config.History.DatabasePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
		repo, err := infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		history = repo
	}

	return NewService(providers, engine, history, logger), nil
}

// ResolveBaseDir returns the configured download base directory, falling
// back to the OS downloads directory when unset.
func ResolveBaseDir(config *domain.Config) (string, error) {
	if config.Download.BaseDir != "" {
		return config.Download.BaseDir, nil
	}
	return infrastructure.DefaultDownloadDir()
}
