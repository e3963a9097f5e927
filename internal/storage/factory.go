package storage

import (
	"context"
	"fmt"

	"auroracast/internal/config"
)

// DeploymentMode selects the storage backend
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// ModeFor derives the storage backend from the runtime configuration.
// A configured bucket outside development means GCS.
func ModeFor(cfg *config.Config) DeploymentMode {
	if cfg.GCSBucket != "" && cfg.Environment != "development" {
		return DeploymentGCS
	}
	return DeploymentLocal
}

// NewClient creates a storage client for the given deployment mode
func NewClient(ctx context.Context, mode DeploymentMode, cfg *config.Config) (Client, error) {
	switch mode {
	case DeploymentLocal:
		bundlesDir := cfg.LocalBundlesDir
		if bundlesDir == "" {
			bundlesDir = "bundles"
		}
		localClient, err := NewLocalClient(bundlesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS storage: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", mode)
	}
}
