package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"auroracast/internal/logger"
)

// GCSClient stores forecast bundles in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a GCS-backed storage client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Global().WithComponent("gcs"),
	}, nil
}

// Close closes the underlying GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreBundleFile writes one file into the bundle folder for the timestamp
func (g *GCSClient) StoreBundleFile(ctx context.Context, data []byte, filename string, timestamp time.Time) (string, error) {
	objectPath := BundleFolderPath(timestamp) + "/" + filename

	g.log.Debugf("Storing bundle file to gs://%s/%s", g.bucket, objectPath)

	obj := g.client.Bucket(g.bucket).Object(objectPath)

	writer := obj.NewWriter(ctx)
	writer.ContentType = ContentType(filename)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": timestamp.Format(time.RFC3339),
		"filename":     filename,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS upload: %w", err)
	}

	return objectPath, nil
}

// GetFile retrieves any file from the bucket
func (g *GCSClient) GetFile(ctx context.Context, path string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(path)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open reader for %s: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ListBundles lists bundle index pages, newest first
func (g *GCSClient) ListBundles(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var indexes []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/index.html") {
			indexes = append(indexes, attrs.Name)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(indexes)))

	if limit > 0 && limit < len(indexes) {
		indexes = indexes[:limit]
	}
	return indexes, nil
}

// PurgeOlderThan deletes bundle objects created before the given age
func (g *GCSClient) PurgeOlderThan(ctx context.Context, age time.Duration) error {
	cutoff := time.Now().Add(-age)

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list objects for purge: %w", err)
		}
		if attrs.Created.Before(cutoff) {
			if delErr := g.client.Bucket(g.bucket).Object(attrs.Name).Delete(ctx); delErr != nil {
				g.log.Warnf("Failed to delete stale object %s: %v", attrs.Name, delErr)
			}
		}
	}
	return nil
}
