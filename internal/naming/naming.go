// Package naming turns a post identity and sequence position into a
// filesystem-safe, collision-free filename.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeIdentity lowercases the raw account handle and strips every
// character outside [a-z0-9_-]. An empty result is legal and propagates
// into filenames unchanged.
func SanitizeIdentity(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildFilename formats "{identity}_{shortcode}.{ext}", or
// "{identity}_{shortcode}_{index:02d}.{ext}" when index > 0. Index is the
// 1-based position within a multi-item post; zero means single item.
func BuildFilename(identity, shortcode, extension string, index int) string {
	if index > 0 {
		return fmt.Sprintf("%s_%s_%02d.%s", identity, shortcode, index, extension)
	}
	return fmt.Sprintf("%s_%s.%s", identity, shortcode, extension)
}

// ResolveUniquePath returns dir/filename if nothing exists there, otherwise
// probes stem__dup2.ext, stem__dup3.ext, ... until a free path is found.
//
// The existence check races with concurrent writers to the same directory;
// callers downloading in parallel must serialize path reservation (see
// ResolveUniquePathFunc, which lets the caller fold reserved-but-unwritten
// names into the probe).
func ResolveUniquePath(dir, filename string) string {
	return ResolveUniquePathFunc(dir, filename, pathExists)
}

// ResolveUniquePathFunc is ResolveUniquePath with a caller-supplied
// existence predicate.
func ResolveUniquePathFunc(dir, filename string, exists func(path string) bool) string {
	path := filepath.Join(dir, filename)
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for n := 2; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s__dup%d%s", stem, n, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
