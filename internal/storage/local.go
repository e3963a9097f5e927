package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalClient stores forecast bundles on the local filesystem
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a local storage client rooted at baseDir
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalClient) Close() error {
	return nil
}

// StoreBundleFile writes one file into the bundle folder for the timestamp
func (l *LocalClient) StoreBundleFile(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error) {
	relPath := filepath.Join(BundleFolderPath(timestamp), filename)
	fullPath := filepath.Join(l.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create bundle directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write bundle file %s: %w", fullPath, err)
	}
	return relPath, nil
}

// GetFile reads a file by its bundle-relative path. Paths that escape the
// base directory are rejected.
func (l *LocalClient) GetFile(ctx context.Context, path string) ([]byte, error) {
	fullPath := filepath.Join(l.baseDir, path)

	absBase, err := filepath.Abs(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(os.PathSeparator)) {
		return nil, fmt.Errorf("path %q escapes storage root", path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// ListBundles lists bundle index pages, newest first
func (l *LocalClient) ListBundles(ctx context.Context, limit int) ([]string, error) {
	var indexes []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !info.IsDir() && info.Name() == "index.html" {
			rel, relErr := filepath.Rel(l.baseDir, path)
			if relErr == nil {
				indexes = append(indexes, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk bundles directory: %w", err)
	}

	// Bundle folder names sort chronologically, so reverse lexical order
	// is newest first
	sort.Sort(sort.Reverse(sort.StringSlice(indexes)))

	if limit > 0 && limit < len(indexes) {
		indexes = indexes[:limit]
	}
	return indexes, nil
}

// PurgeOlderThan removes day directories older than the given age
func (l *LocalClient) PurgeOlderThan(ctx context.Context, age time.Duration) error {
	cutoff := time.Now().Add(-age)

	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return fmt.Errorf("failed to read storage root: %w", err)
	}
	for _, year := range entries {
		if !year.IsDir() {
			continue
		}
		yearPath := filepath.Join(l.baseDir, year.Name())
		info, err := os.Stat(yearPath)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff.AddDate(-1, 0, 0)) {
			os.RemoveAll(yearPath)
			continue
		}
		l.purgeDays(yearPath, cutoff)
	}
	return nil
}

func (l *LocalClient) purgeDays(yearPath string, cutoff time.Time) {
	filepath.Walk(yearPath, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(path)
		}
		return nil
	})
}
