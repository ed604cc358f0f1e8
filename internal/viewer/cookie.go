package viewer

import (
	"log/slog"
	"net/http"

	"github.com/vidcheck/vidcheck/internal/player"
)

const sessionCookieName = "vidcheck_session"

// session returns the caller's player session, starting a new one and
// setting its cookie when the request carries no valid token.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *player.Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if id, err := h.sessions.ParseToken(cookie.Value); err == nil {
			if sess, err := h.sessions.Get(id); err == nil {
				return sess
			}
		}
	}

	sess := h.sessions.Create()
	token, err := h.sessions.IssueToken(sess.ID)
	if err != nil {
		slog.Error("viewer: issue session token", "error", err)
		return sess
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}
