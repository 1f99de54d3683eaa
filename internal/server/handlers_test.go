package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"plotcast/internal/charts"
	"plotcast/internal/config"
	"plotcast/internal/notify"
	"plotcast/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	client, err := storage.NewLocalClient(filepath.Join(t.TempDir(), "charts"))
	if err != nil {
		t.Fatalf("Failed to create storage client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	log := zap.NewNop()
	return &Server{
		Config:    &config.Config{},
		Renderer:  charts.NewRenderer(log),
		Storage:   client,
		Publisher: storage.NewPublisher(client, log),
		Log:       log,
	}
}

func postRender(t *testing.T, srv *Server, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	srv.HandleRender(w, req)
	return w
}

const validPayload = `{
	"symbol": "AAPL",
	"date": "2024-01-05",
	"graph": {
		"xaxis": ["2024-01-01", "2024-01-02", "2024-01-03"],
		"yaxis": [100, 101.5, 99]
	}
}`

func TestHandleRenderSuccess(t *testing.T) {
	srv := newTestServer(t)

	w := postRender(t, srv, validPayload)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp["status"] != "success" {
		t.Errorf("Expected status 'success', got %v", resp["status"])
	}
	if resp["key"] != "AAPL-2024-01-05.png" {
		t.Errorf("Expected key 'AAPL-2024-01-05.png', got %v", resp["key"])
	}
	if resp["cache_hit"] != false {
		t.Errorf("Expected cache_hit false on first render, got %v", resp["cache_hit"])
	}
	url, _ := resp["url"].(string)
	if !strings.HasSuffix(url, "AAPL-2024-01-05.png") {
		t.Errorf("Expected URL ending with the key, got %q", url)
	}
}

func TestHandleRenderCacheHit(t *testing.T) {
	srv := newTestServer(t)

	first := postRender(t, srv, validPayload)
	if first.Code != http.StatusOK {
		t.Fatalf("First render failed: %d", first.Code)
	}

	second := postRender(t, srv, validPayload)
	if second.Code != http.StatusOK {
		t.Fatalf("Second render failed: %d", second.Code)
	}

	var firstResp, secondResp map[string]interface{}
	json.Unmarshal(first.Body.Bytes(), &firstResp)
	json.Unmarshal(second.Body.Bytes(), &secondResp)

	if secondResp["cache_hit"] != true {
		t.Errorf("Expected cache_hit true on re-render, got %v", secondResp["cache_hit"])
	}
	if firstResp["url"] != secondResp["url"] {
		t.Errorf("Expected same URL, got %v and %v", firstResp["url"], secondResp["url"])
	}
}

func TestHandleRenderValidationFailures(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		payload     string
		wantMessage string
	}{
		{
			name:        "missing graph",
			payload:     `{"symbol": "AAPL", "date": "2024-01-05"}`,
			wantMessage: "graph",
		},
		{
			name:        "missing yaxis",
			payload:     `{"graph": {"xaxis": ["2024-01-01"]}}`,
			wantMessage: "yaxis",
		},
		{
			name:        "dimension mismatch",
			payload:     `{"graph": {"xaxis": ["2024-01-01", "2024-01-02"], "yaxis": [1]}}`,
			wantMessage: "same dimension",
		},
		{
			name:        "invalid json",
			payload:     `{`,
			wantMessage: "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postRender(t, srv, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantMessage) {
				t.Errorf("Expected body to mention %q, got %q", tt.wantMessage, w.Body.String())
			}
		})
	}
}

func TestHandleRenderMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/render", nil)
	w := httptest.NewRecorder()
	srv.HandleRender(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestHandleRenderUnparseableDatesStillSucceeds(t *testing.T) {
	srv := newTestServer(t)

	payload := `{
		"symbol": "WEIRD",
		"date": "2024-01-05",
		"graph": {
			"xaxis": ["not-a-date", "also-not-a-date"],
			"yaxis": [1, 2]
		}
	}`

	w := postRender(t, srv, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected fallback render to succeed, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleRenderDispatchesNotification(t *testing.T) {
	received := make(chan []byte, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		buf.ReadFrom(r.Body)
		received <- buf.Bytes()
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	srv := newTestServer(t)
	srv.Notifier = notify.NewSlackNotifier(ts.URL, zap.NewNop())

	payload := `{
		"symbol": "AAPL",
		"date": "2024-01-05",
		"graph": {"xaxis": ["2024-01-01", "2024-01-02"], "yaxis": [1, 2]},
		"destination": {"slack_channel": "#charts"},
		"message_text": "fresh chart"
	}`

	w := postRender(t, srv, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("Render failed: %d", w.Code)
	}

	select {
	case body := <-received:
		var msg map[string]interface{}
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Fatalf("Failed to decode notification: %v", err)
		}
		if msg["channel"] != "#charts" {
			t.Errorf("Expected channel '#charts', got %v", msg["channel"])
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Notification was not dispatched")
	}
}

func TestHandleRenderNotificationFailureDoesNotAffectResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	srv := newTestServer(t)
	srv.Notifier = notify.NewSlackNotifier(ts.URL, zap.NewNop())

	payload := `{
		"symbol": "AAPL",
		"date": "2024-01-06",
		"graph": {"xaxis": ["2024-01-01", "2024-01-02"], "yaxis": [1, 2]},
		"destination": {"slack_channel": "#charts"},
		"message_text": "fresh chart"
	}`

	w := postRender(t, srv, payload)
	if w.Code != http.StatusOK {
		t.Errorf("Notification failure must not fail the request, got %d", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", health["status"])
	}
}

func TestHandleChartProxy(t *testing.T) {
	srv := newTestServer(t)

	// Publish a chart first.
	if w := postRender(t, srv, validPayload); w.Code != http.StatusOK {
		t.Fatalf("Render failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/charts/AAPL-2024-01-05.png", nil)
	w := httptest.NewRecorder()
	srv.HandleChartProxy(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png content type, got %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty chart body")
	}
}

func TestHandleChartProxyNotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/charts/missing.png", nil)
	w := httptest.NewRecorder()
	srv.HandleChartProxy(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandleListCharts(t *testing.T) {
	srv := newTestServer(t)

	if w := postRender(t, srv, validPayload); w.Code != http.StatusOK {
		t.Fatalf("Render failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/charts", nil)
	w := httptest.NewRecorder()
	srv.HandleListCharts(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if count, _ := resp["count"].(float64); count != 1 {
		t.Errorf("Expected 1 chart, got %v", resp["count"])
	}
}
