package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"plotcast/internal/config"
)

// DeploymentMode represents the deployment environment
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewClient creates a storage client based on deployment mode and configuration
func NewClient(ctx context.Context, mode DeploymentMode, cfg *config.Config, log *zap.Logger) (Client, error) {
	switch mode {
	case DeploymentLocal:
		chartsDir := cfg.LocalChartsDir
		if chartsDir == "" {
			chartsDir = "charts" // Default fallback
		}

		localClient, err := NewLocalClient(chartsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		if cfg.DestinationBucket == "" {
			return nil, fmt.Errorf("GRAPH_DESTINATION_BUCKET is required in gcs mode")
		}
		gcsClient, err := NewGCSClient(ctx, cfg.DestinationBucket, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", mode)
	}
}
