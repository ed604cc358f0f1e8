package ratelimit

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/vidcheck/vidcheck/internal/httputil"
)

const (
	cleanupInterval = 5 * time.Minute
	idleExpiry      = 10 * time.Minute
)

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// Limiter is a per-client token bucket. Idle clients are forgotten by a
// cleanup loop that runs until the context passed to NewLimiter is done.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     float64
	burst    float64
}

func NewLimiter(ctx context.Context, requestsPerSecond float64, burst int) *Limiter {
	l := &Limiter{
		visitors: make(map[string]*visitor),
		rate:     requestsPerSecond,
		burst:    float64(burst),
	}
	go l.cleanup(ctx)
	return l
}

func (l *Limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, exists := l.visitors[key]
	if !exists {
		l.visitors[key] = &visitor{tokens: l.burst - 1, lastSeen: now}
		return true
	}

	elapsed := now.Sub(v.lastSeen).Seconds()
	v.lastSeen = now
	v.tokens += elapsed * l.rate
	if v.tokens > l.burst {
		v.tokens = l.burst
	}

	if v.tokens < 1 {
		return false
	}

	v.tokens--
	return true
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleExpiry {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.sweep(now)
		}
	}
}

// ClientKey identifies the caller by its remote address without the port.
// Forwarding headers are ignored here; deployments behind a trusted proxy
// rewrite RemoteAddr first with chi's middleware.RealIP.
func ClientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func rejectJSON(w http.ResponseWriter, r *http.Request) {
	httputil.WriteError(w, http.StatusTooManyRequests, "too many requests")
}

// Middleware answers limited requests with a JSON 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return l.MiddlewareFunc(rejectJSON)(next)
}

// MiddlewareFunc is Middleware with a custom response for limited requests,
// used by form posts that should redirect rather than return JSON.
func (l *Limiter) MiddlewareFunc(reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(ClientKey(r)) {
				w.Header().Set("Retry-After", "10")
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
