package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vidcheck/vidcheck/internal/docs"
	"github.com/vidcheck/vidcheck/internal/ratelimit"
	"github.com/vidcheck/vidcheck/internal/viewer"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Pinger                Pinger
	Viewer                *viewer.Handler
	BaseURL               string
	StorageEndpoint       string
	AllowedFrameAncestors string
	// Docs serves the API reference under /api/docs; nil leaves it off.
	Docs *docs.Handler
	// TrustProxy takes the client address from X-Real-IP or X-Forwarded-For.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

type Server struct {
	router chi.Router
	pinger Pinger
	viewer *viewer.Handler
	docs   *docs.Handler
}

// New builds the router. ctx bounds the rate limiters' cleanup loops.
func New(ctx context.Context, cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(slogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:               cfg.BaseURL,
		StorageEndpoint:       cfg.StorageEndpoint,
		AllowedFrameAncestors: cfg.AllowedFrameAncestors,
	}))

	s := &Server{router: r, pinger: cfg.Pinger, viewer: cfg.Viewer, docs: cfg.Docs}
	s.routes(ctx)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(ctx context.Context) {
	s.router.Get("/api/health", s.handleHealth)

	if s.docs != nil {
		s.router.Get("/api/docs", s.docs.Page)
		s.router.Get("/api/docs/openapi.yaml", s.docs.Spec)
	}

	if s.viewer == nil {
		return
	}
	v := s.viewer

	analyzeLimiter := ratelimit.NewLimiter(ctx, 0.2, 3)
	questionLimiter := ratelimit.NewLimiter(ctx, 0.5, 5)
	shareLimiter := ratelimit.NewLimiter(ctx, 0.1, 3)

	s.router.Get("/", v.Index)
	s.router.With(analyzeLimiter.MiddlewareFunc(v.RateLimited)).Post("/analyze", v.Analyze)
	s.router.With(questionLimiter.MiddlewareFunc(v.RateLimited)).Post("/question", v.Question)
	s.router.With(shareLimiter.MiddlewareFunc(v.RateLimited)).Post("/share", v.Share)
	s.router.Get("/seek", v.Seek)
	s.router.Get("/play", v.Play)
	s.router.Get("/history", v.History)
	s.router.Post("/history/{id}/open", v.OpenHistory)

	s.router.Post("/api/seek", v.APISeek)
	s.router.Get("/api/session", v.APISession)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"database unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
