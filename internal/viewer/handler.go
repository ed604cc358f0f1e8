// Package viewer serves the analysis page and the form, seek and JSON
// endpoints that drive a browser's player session.
package viewer

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/history"
	"github.com/vidcheck/vidcheck/internal/player"
	"github.com/vidcheck/vidcheck/internal/report"
	"github.com/vidcheck/vidcheck/internal/youtube"
)

const (
	historySaveTimeout = 30 * time.Second
	shareLinkExpiry    = 7 * 24 * time.Hour
)

type Analyzer interface {
	Analyze(ctx context.Context, videoURL string) (*backend.Result, error)
	Ask(ctx context.Context, videoURL, question string) (*backend.Answer, error)
}

type InfoFetcher interface {
	Fetch(ctx context.Context, videoID string) (*youtube.Info, error)
}

type HistoryStore interface {
	Save(ctx context.Context, rec *history.Record) error
	Get(ctx context.Context, id int64) (*history.Record, error)
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

type SnapshotStorage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Config wires a Handler. Info, History and Storage are optional; leave them
// nil to disable the metadata fallback, history and sharing.
type Config struct {
	Backend       Analyzer
	Sessions      *player.Store
	Renderer      *report.Renderer
	Info          InfoFetcher
	History       HistoryStore
	Storage       SnapshotStorage
	SecureCookies bool
}

type Handler struct {
	backend       Analyzer
	sessions      *player.Store
	renderer      *report.Renderer
	info          InfoFetcher
	history       HistoryStore
	storage       SnapshotStorage
	secureCookies bool
	now           func() time.Time

	saves sync.WaitGroup
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		backend:       cfg.Backend,
		sessions:      cfg.Sessions,
		renderer:      cfg.Renderer,
		info:          cfg.Info,
		history:       cfg.History,
		storage:       cfg.Storage,
		secureCookies: cfg.SecureCookies,
		now:           time.Now,
	}
}

// Wait blocks until background history saves have finished.
func (h *Handler) Wait() {
	h.saves.Wait()
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, tab string) {
	target := "/?tab=" + report.NormalizeTab(tab)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) redirectToPlayer(w http.ResponseWriter, r *http.Request, tab string) {
	target := "/?tab=" + report.NormalizeTab(tab) + "#player"
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, sess *player.Session, tab, message string) {
	sess.SetFlash(message, h.now())
	h.redirect(w, r, tab)
}

// saveHistory stores a finished analysis without holding up the response.
func (h *Handler) saveHistory(videoURL, videoID string, result *backend.Result) {
	if h.history == nil || result == nil {
		return
	}
	rec := &history.Record{
		VideoID:  videoID,
		VideoURL: videoURL,
		Result:   result,
	}
	if result.VideoInfo != nil {
		rec.Title = result.VideoInfo.Title
	}

	h.saves.Add(1)
	go func() {
		defer h.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), historySaveTimeout)
		defer cancel()
		if err := h.history.Save(ctx, rec); err != nil {
			slog.Error("viewer: save history", "video_id", videoID, "error", err)
			return
		}
		slog.Info("viewer: analysis saved", "video_id", videoID, "id", rec.ID)
	}()
}

func exchanges(qa []player.Exchange) []report.QAEntry {
	out := make([]report.QAEntry, 0, len(qa))
	for _, e := range qa {
		out = append(out, report.QAEntry{Question: e.Question, Answer: e.Answer, AskedAt: e.AskedAt})
	}
	return out
}
