package server_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/docs"
	"github.com/vidcheck/vidcheck/internal/player"
	"github.com/vidcheck/vidcheck/internal/report"
	"github.com/vidcheck/vidcheck/internal/server"
	"github.com/vidcheck/vidcheck/internal/viewer"
)

// --- Mock types ---

type mockPinger struct{ err error }

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

type mockAnalyzer struct{}

func (m *mockAnalyzer) Analyze(ctx context.Context, videoURL string) (*backend.Result, error) {
	return &backend.Result{VideoInfo: &backend.VideoInfo{Title: "Mock Video"}}, nil
}

func (m *mockAnalyzer) Ask(ctx context.Context, videoURL, question string) (*backend.Answer, error) {
	return &backend.Answer{Answer: "mock answer"}, nil
}

// --- Helpers ---

func newServerWithoutViewer(t *testing.T) *server.Server {
	t.Helper()
	return server.New(t.Context(), server.Config{})
}

func newServerWithViewer(t *testing.T) *server.Server {
	t.Helper()
	return newServerWithViewerConfig(t, server.Config{})
}

func newServerWithViewerConfig(t *testing.T, cfg server.Config) *server.Server {
	t.Helper()
	theme, _, err := report.ThemeByName(report.DefaultTheme)
	if err != nil {
		t.Fatalf("load theme: %v", err)
	}
	v := viewer.NewHandler(viewer.Config{
		Backend:  &mockAnalyzer{},
		Sessions: player.NewStore("test-secret", time.Hour),
		Renderer: report.NewRenderer(theme),
	})
	cfg.Pinger = &mockPinger{}
	cfg.Viewer = v
	cfg.BaseURL = "https://vidcheck.test"
	cfg.StorageEndpoint = "https://storage.example.com"
	return server.New(t.Context(), cfg)
}

func executeRequest(srv *server.Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func executeRequestWithBody(srv *server.Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// --- Health Endpoint ---

func TestHealthEndpointReturnsOK(t *testing.T) {
	srv := newServerWithoutViewer(t)
	rec := executeRequest(srv, http.MethodGet, "/api/health")

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	expected := `{"status":"ok"}`
	if rec.Body.String() != expected {
		t.Errorf("expected body %q, got %q", expected, rec.Body.String())
	}
}

func TestHealthEndpointContentType(t *testing.T) {
	srv := newServerWithoutViewer(t)
	rec := executeRequest(srv, http.MethodGet, "/api/health")

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type %q, got %q", "application/json", contentType)
	}
}

func TestHealthEndpointWithPingSuccess(t *testing.T) {
	srv := server.New(t.Context(), server.Config{
		Pinger: &mockPinger{err: nil},
	})
	rec := executeRequest(srv, http.MethodGet, "/api/health")

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestHealthEndpointWithPingFailure(t *testing.T) {
	srv := server.New(t.Context(), server.Config{
		Pinger: &mockPinger{err: errors.New("connection refused")},
	})
	rec := executeRequest(srv, http.MethodGet, "/api/health")

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}

	expected := `{"status":"unhealthy","error":"database unreachable"}`
	if rec.Body.String() != expected {
		t.Errorf("expected body %q, got %q", expected, rec.Body.String())
	}
}

func TestHealthEndpointWrongMethodReturnsMethodNotAllowed(t *testing.T) {
	srv := newServerWithoutViewer(t)
	rec := executeRequest(srv, http.MethodPost, "/api/health")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST /api/health, got %d", rec.Code)
	}
}

// --- Route registration ---

func TestViewerRoutesNotRegisteredWithoutViewer(t *testing.T) {
	srv := newServerWithoutViewer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodPost, "/analyze"},
		{http.MethodPost, "/question"},
		{http.MethodGet, "/seek"},
		{http.MethodGet, "/api/session"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := executeRequest(srv, route.method, route.path)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404 for %s %s without viewer, got %d", route.method, route.path, rec.Code)
			}
		})
	}
}

func TestViewerRoutesRegistered(t *testing.T) {
	srv := newServerWithViewer(t)

	routes := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/seek?t=00:10", http.StatusSeeOther},
		{http.MethodGet, "/play?start=1&end=2", http.StatusSeeOther},
		{http.MethodGet, "/history", http.StatusOK},
		{http.MethodGet, "/history/1/open", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/session", http.StatusOK},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := executeRequest(srv, route.method, route.path)
			if rec.Code != route.status {
				t.Errorf("expected %d for %s %s, got %d", route.status, route.method, route.path, rec.Code)
			}
		})
	}
}

func TestAPISeekRouteRegistered(t *testing.T) {
	srv := newServerWithViewer(t)

	rec := executeRequestWithBody(srv, http.MethodPost, "/api/seek", "{}", map[string]string{"Content-Type": "application/json"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty seek body, got %d", rec.Code)
	}
}

func TestIndexCarriesCSPNonce(t *testing.T) {
	srv := newServerWithViewer(t)
	rec := executeRequest(srv, http.MethodGet, "/")

	csp := rec.Header().Get("Content-Security-Policy")
	start := strings.Index(csp, "'nonce-")
	if start == -1 {
		t.Fatalf("expected nonce in CSP, got: %s", csp)
	}
	nonce := csp[start+len("'nonce-"):]
	nonce = nonce[:strings.Index(nonce, "'")]

	if !strings.Contains(rec.Body.String(), `nonce="`+nonce+`"`) {
		t.Error("expected page style tag to carry the CSP nonce")
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newServerWithViewer(t)
	rec := executeRequest(srv, http.MethodGet, "/unknown")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown route, got %d", rec.Code)
	}
}

func TestDocsRoutesOnlyWhenEnabled(t *testing.T) {
	disabled := newServerWithoutViewer(t)
	if rec := executeRequest(disabled, http.MethodGet, "/api/docs"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for docs when disabled, got %d", rec.Code)
	}

	apiDocs, err := docs.New("Staging API")
	if err != nil {
		t.Fatalf("docs.New: %v", err)
	}
	enabled := server.New(t.Context(), server.Config{Docs: apiDocs})
	for _, path := range []string{"/api/docs", "/api/docs/openapi.yaml"} {
		rec := executeRequest(enabled, http.MethodGet, path)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for %s when enabled, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Staging API") {
			t.Errorf("expected %s to carry the configured title", path)
		}
	}
}

// --- Rate limiting ---

func TestAnalyzeRateLimited(t *testing.T) {
	srv := newServerWithViewer(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 20; i++ {
		last = executeRequestWithBody(srv, http.MethodPost, "/analyze", "video_url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Accept":       "application/json",
		})
		if last.Code == http.StatusTooManyRequests {
			if last.Header().Get("Retry-After") == "" {
				t.Error("expected Retry-After header")
			}
			return
		}
	}
	t.Errorf("expected 429 after bursts, last status %d", last.Code)
}

func TestQuestionRateLimitedFormRedirects(t *testing.T) {
	srv := newServerWithViewer(t)

	for i := 0; i < 20; i++ {
		rec := executeRequestWithBody(srv, http.MethodPost, "/question", "question=hi", map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
		})
		if rec.Header().Get("Retry-After") != "" {
			if rec.Code != http.StatusSeeOther {
				t.Errorf("expected limited form post to redirect, got %d", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != "/?tab=qa" {
				t.Errorf("expected redirect to /?tab=qa, got %q", loc)
			}
			return
		}
	}
	t.Error("expected question route to be rate limited")
}

func TestShareRateLimited(t *testing.T) {
	srv := newServerWithViewer(t)

	for i := 0; i < 20; i++ {
		rec := executeRequestWithBody(srv, http.MethodPost, "/share", "", map[string]string{"Accept": "application/json"})
		if rec.Code == http.StatusTooManyRequests {
			return
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 without storage, got %d", rec.Code)
		}
	}
	t.Error("expected share route to be rate limited")
}

func analyzeFromForwardedClient(srv *server.Server, forwarded string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("video_url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Forwarded-For", forwarded)
	req.RemoteAddr = "10.0.0.1:4000"
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	srv := newServerWithViewer(t)

	for i := 0; i < 20; i++ {
		// A new forwarded address on each request from one peer.
		rec := analyzeFromForwardedClient(srv, fmt.Sprintf("203.0.113.%d", i+1))
		if rec.Code == http.StatusTooManyRequests {
			return
		}
	}
	t.Error("expected rotating X-Forwarded-For values to share the peer's limit")
}

func TestAnalyzeRateLimitUsesForwardedForBehindTrustedProxy(t *testing.T) {
	srv := newServerWithViewerConfig(t, server.Config{TrustProxy: true})

	for i := 0; i < 20; i++ {
		rec := analyzeFromForwardedClient(srv, fmt.Sprintf("203.0.113.%d", i+1))
		if rec.Code == http.StatusTooManyRequests {
			t.Fatalf("request %d limited although each came from a distinct client", i+1)
		}
	}
	if rec := analyzeFromForwardedClient(srv, "203.0.113.1"); rec.Code == http.StatusTooManyRequests {
		t.Error("a single repeat from a client with burst left should pass")
	}
}
