package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned by fetchers when a post file does not exist.
var ErrNotFound = errors.New("post file not found")

// ContentExtensions are the file extensions treated as blog posts.
var ContentExtensions = []string{".md", ".markdown"}

// Discoverer lists candidate post filenames.
type Discoverer interface {
	// Name identifies the strategy in logs and load reports.
	Name() string
	// Discover returns base filenames in discovery order.
	Discover(ctx context.Context) ([]string, error)
}

// Fetcher returns the raw content of a single post file.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Source is a location that can both list and serve post files.
type Source interface {
	Discoverer
	Fetcher
}

// FetchError describes a failed fetch of one file.
type FetchError struct {
	Name       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Name, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsContentFile reports whether name has a recognized post extension.
func IsContentFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range ContentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// TrimContentExt removes a recognized post extension from name.
func TrimContentExt(name string) string {
	if IsContentFile(name) {
		return strings.TrimSuffix(name, path.Ext(name))
	}
	return name
}

// dedupe drops empty and repeated names, keeping first occurrences in order.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
