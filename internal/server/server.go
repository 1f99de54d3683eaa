package server

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"plotcast/internal/charts"
	"plotcast/internal/config"
	"plotcast/internal/notify"
	"plotcast/internal/storage"
)

// Server wires the renderer, the object store and the optional notifier
// behind the HTTP surface.
type Server struct {
	Config    *config.Config
	Renderer  *charts.Renderer
	Storage   storage.Client
	Publisher *storage.Publisher
	Notifier  *notify.SlackNotifier
	Log       *zap.Logger
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	client, err := storage.NewClient(ctx, storage.DeploymentMode(cfg.DeploymentMode), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var notifier *notify.SlackNotifier
	if cfg.SlackWebhookURL != "" {
		notifier = notify.NewSlackNotifier(cfg.SlackWebhookURL, log)
	} else {
		log.Info("no Slack webhook configured, notifications disabled")
	}

	return &Server{
		Config:    cfg,
		Renderer:  charts.NewRenderer(log),
		Storage:   client,
		Publisher: storage.NewPublisher(client, log),
		Notifier:  notifier,
		Log:       log,
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/render", s.HandleRender)
	mux.HandleFunc("/charts", s.HandleListCharts)
	mux.HandleFunc("/charts/", s.HandleChartProxy)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
