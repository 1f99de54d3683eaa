package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the chart publishing service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8080"`

	// Storage configuration
	DeploymentMode    string `env:"DEPLOYMENT_MODE,default=local"`
	DestinationBucket string `env:"GRAPH_DESTINATION_BUCKET"`
	LocalChartsDir    string `env:"LOCAL_CHARTS_DIR,default=./charts"`

	// Notification configuration (optional; notifications are skipped
	// entirely when no webhook is configured)
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=console"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
