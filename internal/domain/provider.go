package domain

import "context"

// Provider resolves post URLs for a single source site. Implementations are
// registered with the application service; the download engine never talks
// to a provider directly.
type Provider interface {
	// ID returns the provider identifier, used to namespace the download
	// directory (e.g. "instagram").
	ID() string

	// Matches reports whether the provider can handle the given URL.
	Matches(url string) bool

	// Resolve fetches the post page and extracts its media list.
	Resolve(ctx context.Context, url string) (*ResolveResult, error)
}
