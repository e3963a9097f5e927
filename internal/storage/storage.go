// Package storage persists forecast bundles (dashboard HTML, charts and
// raw data) either on the local filesystem or in Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client is the storage backend for forecast bundles
type Client interface {
	// Close releases backend resources
	Close() error

	// StoreBundleFile stores one file inside the bundle folder for the
	// given generation timestamp
	StoreBundleFile(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error)

	// GetFile retrieves a file by its bundle-relative path
	GetFile(ctx context.Context, path string) ([]byte, error)

	// ListBundles lists bundle index pages, newest first, up to limit
	ListBundles(ctx context.Context, limit int) ([]string, error)

	// PurgeOlderThan removes bundles older than the given age
	PurgeOlderThan(ctx context.Context, age time.Duration) error
}

// BundleFolderPath generates the folder path for a forecast bundle.
// Format: YYYY/MM/DD/AuroraForecast-YYYY-MM-DD-HH-MM-SS
func BundleFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/AuroraForecast-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// ContentType determines the MIME content type from a file extension
func ContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	case strings.HasSuffix(filename, ".css"):
		return "text/css"
	case strings.HasSuffix(filename, ".md"):
		return "text/markdown"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(filename, ".gif"):
		return "image/gif"
	case strings.HasSuffix(filename, ".svg"):
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
