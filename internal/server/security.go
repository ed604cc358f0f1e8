package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vidcheck/vidcheck/internal/httputil"
)

const (
	youtubeFrames = "https://www.youtube.com https://www.youtube-nocookie.com"
	youtubeImages = "https://i.ytimg.com https://img.youtube.com"
)

type SecurityConfig struct {
	BaseURL               string
	StorageEndpoint       string
	AllowedFrameAncestors string
}

func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := cfg.BaseURL != "" && hasHTTPS(cfg.BaseURL)

	storageSuffix := ""
	if cfg.StorageEndpoint != "" {
		storageSuffix = " " + cfg.StorageEndpoint
	}

	frameAncestors := "'self'"
	if extra := strings.TrimSpace(cfg.AllowedFrameAncestors); extra != "" {
		frameAncestors += " " + extra
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, nonce := httputil.WithNonce(r)
			source := httputil.NonceSource(nonce)

			// The embedded player needs the page origin as referrer.
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			w.Header().Set("Permissions-Policy", `camera=(), microphone=(), geolocation=(), autoplay=(self "https://www.youtube.com"), fullscreen=(self "https://www.youtube.com")`)

			// form-action covers the share redirect to the storage endpoint.
			csp := fmt.Sprintf(
				"default-src 'self'; img-src 'self' data: %s%s; script-src 'self'%s; style-src 'self'%s; frame-src %s; connect-src 'self'; form-action 'self'%s; frame-ancestors %s;",
				youtubeImages, storageSuffix, source, source, youtubeFrames, storageSuffix, frameAncestors,
			)
			w.Header().Set("Content-Security-Policy", csp)

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasHTTPS(baseURL string) bool {
	return strings.HasPrefix(baseURL, "https://")
}
