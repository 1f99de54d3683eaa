package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"plotcast/internal/models"
	"plotcast/internal/storage"
)

// notifyTimeout bounds the fire-and-forget dispatch, which outlives the
// request context on purpose.
const notifyTimeout = 30 * time.Second

// HandleRender validates the request, renders the chart unless the derived
// key already exists in storage, and responds with the public URL. The
// optional Slack notification is dispatched in the background and never
// affects the response.
func (s *Server) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	startTime := time.Now()

	var req models.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON payload: %v", err), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		s.Log.Warn("request validation failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := storage.ObjectKey(req.Symbol, req.Date)
	s.Log.Info("handling render request",
		zap.String("symbol", req.Symbol),
		zap.String("date", req.Date),
		zap.String("key", key))

	url, cacheHit, err := s.Publisher.Publish(ctx, key, func() ([]byte, error) {
		return s.Renderer.Render(req.Graph)
	})
	if err != nil {
		s.Log.Error("publish failed", zap.String("key", key), zap.Error(err))
		http.Error(w, fmt.Sprintf("publish failed: %v", err), http.StatusInternalServerError)
		return
	}

	s.dispatchNotification(&req, url)

	duration := time.Since(startTime)
	response := map[string]interface{}{
		"status":      "success",
		"url":         url,
		"key":         key,
		"cache_hit":   cacheHit,
		"duration_ms": duration.Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// dispatchNotification fires the Slack notification in the background when
// the request names a channel and a notifier is configured. Failures are
// logged and never surfaced to the HTTP caller.
func (s *Server) dispatchNotification(req *models.RenderRequest, url string) {
	if s.Notifier == nil || req.Destination == nil || req.Destination.SlackChannel == "" {
		return
	}

	channel := req.Destination.SlackChannel
	text := req.MessageText
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.Notifier.Send(ctx, channel, text, url); err != nil {
			s.Log.Warn("notification dispatch failed",
				zap.String("channel", channel),
				zap.Error(err))
		}
	}()
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"storage": "ok",
			"config":  "ok",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleListCharts lists published chart keys with their public URLs.
func (s *Server) HandleListCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
		if limit > 100 {
			limit = 100 // Cap at 100
		}
	}

	keys, err := s.Storage.List(r.Context(), "", limit)
	if err != nil {
		s.Log.Error("failed to list charts", zap.Error(err))
		http.Error(w, fmt.Sprintf("failed to list charts: %v", err), http.StatusInternalServerError)
		return
	}

	charts := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		charts = append(charts, map[string]string{
			"key": key,
			"url": s.Storage.PublicURL(key),
		})
	}

	response := map[string]interface{}{
		"charts":    charts,
		"count":     len(charts),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleChartProxy serves a stored chart image through the service.
func (s *Server) HandleChartProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/charts/")
	if key == "" || strings.Contains(key, "..") {
		http.Error(w, "chart key required", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), key)
	if err != nil {
		s.Log.Warn("chart not found", zap.String("key", key), zap.Error(err))
		http.Error(w, "chart not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// HandleRoot serves a small service information page.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Plotcast</title></head>
<body>
    <h1>Plotcast</h1>
    <p>Renders time-series charts and publishes them to object storage.</p>
    <ul>
        <li><strong>GET /health</strong> - service health check</li>
        <li><strong>POST /render</strong> - render and publish a chart</li>
        <li><strong>GET /charts</strong> - list published charts</li>
        <li><strong>GET /charts/{key}</strong> - fetch a published chart image</li>
    </ul>
</body>
</html>`)
}
