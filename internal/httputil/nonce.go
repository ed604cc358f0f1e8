package httputil

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
)

type nonceKey struct{}

const nonceBytes = 16

// NewNonce returns a base64url value for a CSP nonce source.
func NewNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// WithNonce attaches a fresh nonce to the request. If no nonce could be
// generated the request is returned unchanged with an empty nonce, and the
// page renders with its inline styles blocked.
func WithNonce(r *http.Request) (*http.Request, string) {
	nonce, err := NewNonce()
	if err != nil {
		slog.Error("failed to generate CSP nonce", "path", r.URL.Path, "error", err)
		return r, ""
	}
	return r.WithContext(context.WithValue(r.Context(), nonceKey{}, nonce)), nonce
}

func NonceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(nonceKey{}).(string); ok {
		return v
	}
	return ""
}

// NonceSource formats nonce as a CSP source expression, leading space
// included, or "" when there is no nonce.
func NonceSource(nonce string) string {
	if nonce == "" {
		return ""
	}
	return " 'nonce-" + nonce + "'"
}
