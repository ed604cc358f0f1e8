package viewer

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/history"
	"github.com/vidcheck/vidcheck/internal/httputil"
	"github.com/vidcheck/vidcheck/internal/report"
	"github.com/vidcheck/vidcheck/internal/storage"
	"github.com/vidcheck/vidcheck/internal/validate"
	"github.com/vidcheck/vidcheck/internal/youtube"
)

type analyzeForm struct {
	VideoURL string `form:"video_url" validate:"required,max=2048,url,youtube"`
}

type questionForm struct {
	Question string `form:"question" validate:"required,max=2000"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	st := sess.State()

	data := report.PageData{
		Nonce:          httputil.NonceFromContext(r.Context()),
		Tab:            r.URL.Query().Get("tab"),
		VideoURL:       st.VideoURL,
		VideoID:        st.VideoID,
		EmbedURL:       st.EmbedURL(),
		Analyzed:       st.Result != nil,
		Report:         report.Build(st.Result),
		QA:             exchanges(st.QA),
		ShareEnabled:   h.storage != nil,
		HistoryEnabled: h.history != nil,
	}
	if f := sess.TakeFlash(h.now()); f != nil {
		data.Flash = f.Message
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Page(w, data); err != nil {
		slog.Error("viewer: render page", "error", err)
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	form := analyzeForm{VideoURL: strings.TrimSpace(r.PostFormValue("video_url"))}
	if err := validate.Struct(form); err != nil {
		h.fail(w, r, sess, "summary", err.Error())
		return
	}

	gen := sess.BeginAnalysis(form.VideoURL)
	sess.Load(form.VideoURL)

	result, err := h.backend.Analyze(r.Context(), form.VideoURL)
	if err != nil {
		slog.Error("viewer: analyze video", "url", form.VideoURL, "error", err)
		h.fail(w, r, sess, "summary", "Failed to analyze video. Please try again.")
		return
	}

	videoID, _ := youtube.ExtractVideoID(form.VideoURL)
	if result.VideoInfo == nil && h.info != nil && videoID != "" {
		if info, err := h.info.Fetch(r.Context(), videoID); err != nil {
			slog.Warn("viewer: fetch video info", "video_id", videoID, "error", err)
		} else {
			result.VideoInfo = &backend.VideoInfo{Title: info.Title, Channel: info.Channel, Thumbnail: info.Thumbnail}
		}
	}

	if !sess.CompleteAnalysis(gen, form.VideoURL, result) {
		slog.Info("viewer: discarded stale analysis", "url", form.VideoURL)
	}
	h.saveHistory(form.VideoURL, videoID, result)
	h.redirect(w, r, "summary")
}

func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	form := questionForm{Question: strings.TrimSpace(r.PostFormValue("question"))}
	if err := validate.Struct(form); err != nil {
		h.fail(w, r, sess, "qa", err.Error())
		return
	}

	st := sess.State()
	if st.Result == nil || st.AnalyzedURL == "" {
		h.fail(w, r, sess, "qa", "Please analyze a video before asking questions.")
		return
	}

	answer, err := h.backend.Ask(r.Context(), st.AnalyzedURL, form.Question)
	if err != nil {
		slog.Error("viewer: ask question", "url", st.AnalyzedURL, "error", err)
		message := "Failed to get answer"
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message = apiErr.Message
		}
		h.fail(w, r, sess, "qa", message)
		return
	}

	if answer.VideoID != "" && answer.VideoID != st.VideoID {
		sess.EnsureVideo(answer.VideoID)
	}
	sess.AddExchange(form.Question, answer.Answer, h.now())
	h.redirect(w, r, "qa")
}

// Seek moves the player to ?t= and returns to the page. A bad timestamp or a
// missing player leaves the session unchanged.
func (h *Handler) Seek(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	q := r.URL.Query()
	sess.SeekTimestamp(q.Get("t"))
	h.redirectToPlayer(w, r, q.Get("tab"))
}

func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	q := r.URL.Query()
	start, startErr := strconv.ParseFloat(q.Get("start"), 64)
	end, endErr := strconv.ParseFloat(q.Get("end"), 64)
	if startErr == nil && endErr == nil {
		sess.PlaySegment(start, end)
	}
	tab := q.Get("tab")
	if tab == "" {
		tab = "transcript"
	}
	h.redirectToPlayer(w, r, tab)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	data := report.HistoryData{
		Nonce:   httputil.NonceFromContext(r.Context()),
		Enabled: h.history != nil,
	}
	if h.history != nil {
		entries, err := h.history.Recent(r.Context(), history.DefaultRecentLimit)
		if err != nil {
			slog.Error("viewer: list history", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		for _, e := range entries {
			thumb := e.Thumbnail
			if thumb == "" && e.VideoID != "" {
				thumb = youtube.ThumbnailURL(e.VideoID)
			}
			data.Items = append(data.Items, report.HistoryItem{
				ID:        e.ID,
				VideoID:   e.VideoID,
				VideoURL:  e.VideoURL,
				Title:     e.Title,
				Thumbnail: thumb,
				CreatedAt: e.CreatedAt,
			})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.History(w, data); err != nil {
		slog.Error("viewer: render history", "error", err)
	}
}

// OpenHistory loads a stored analysis into the session without calling the
// backend.
func (h *Handler) OpenHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	rec, err := h.history.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("viewer: open history", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sess := h.session(w, r)
	sess.Restore(rec.VideoURL, rec.Result)
	h.redirect(w, r, "summary")
}

type shareResponse struct {
	URL string `json:"url"`
}

// Share uploads a standalone snapshot of the current analysis and hands back
// a presigned link to it. JSON clients get {url}; browsers are redirected.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	wantsJSON := httputil.WantsJSON(r)

	shareFail := func(status int, message string) {
		if wantsJSON {
			httputil.WriteError(w, status, message)
			return
		}
		h.fail(w, r, sess, "summary", message)
	}

	if h.storage == nil {
		shareFail(http.StatusServiceUnavailable, "sharing is not configured")
		return
	}
	st := sess.State()
	if st.Result == nil {
		shareFail(http.StatusNotFound, "no analysis to share")
		return
	}

	var buf bytes.Buffer
	err := h.renderer.Snapshot(&buf, report.SnapshotData{
		VideoID:     st.VideoID,
		VideoURL:    st.AnalyzedURL,
		Report:      report.Build(st.Result),
		GeneratedAt: h.now().UTC(),
	})
	if err != nil {
		slog.Error("viewer: render snapshot", "error", err)
		shareFail(http.StatusInternalServerError, "failed to create report")
		return
	}

	key := storage.ReportKey(st.VideoID)
	if err := h.storage.PutObject(r.Context(), key, buf.Bytes(), "text/html; charset=utf-8"); err != nil {
		slog.Error("viewer: upload snapshot", "key", key, "error", err)
		shareFail(http.StatusBadGateway, "failed to upload report")
		return
	}
	url, err := h.storage.GenerateDownloadURL(r.Context(), key, shareLinkExpiry)
	if err != nil {
		slog.Error("viewer: presign snapshot", "key", key, "error", err)
		shareFail(http.StatusInternalServerError, "failed to create share link")
		return
	}

	slog.Info("viewer: report shared", "video_id", st.VideoID, "key", key)
	if wantsJSON {
		httputil.WriteJSON(w, http.StatusOK, shareResponse{URL: url})
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// RateLimited answers a throttled request: JSON clients get a 429, form posts
// get a banner on the page they came from.
func (h *Handler) RateLimited(w http.ResponseWriter, r *http.Request) {
	if httputil.WantsJSON(r) || strings.HasPrefix(r.URL.Path, "/api/") {
		httputil.WriteError(w, http.StatusTooManyRequests, "too many requests")
		return
	}
	tab := "summary"
	if r.URL.Path == "/question" {
		tab = "qa"
	}
	h.fail(w, r, h.session(w, r), tab, "Too many requests. Please wait a moment and try again.")
}
