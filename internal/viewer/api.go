package viewer

import (
	"net/http"
	"time"

	"github.com/vidcheck/vidcheck/internal/httputil"
	"github.com/vidcheck/vidcheck/internal/timecode"
	"github.com/vidcheck/vidcheck/internal/validate"
)

type seekRequest struct {
	Timestamp string `json:"timestamp" validate:"required,max=32"`
}

type seekResponse struct {
	Seconds  int    `json:"seconds"`
	EmbedURL string `json:"embedUrl"`
}

// APISeek is the JSON form of Seek for scripted clients.
func (h *Handler) APISeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := timecode.Parse(req.Timestamp); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid timestamp")
		return
	}

	sess := h.session(w, r)
	seconds, ok := sess.SeekTimestamp(req.Timestamp)
	if !ok {
		httputil.WriteError(w, http.StatusConflict, "no video loaded")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, seekResponse{
		Seconds:  seconds,
		EmbedURL: sess.State().EmbedURL(),
	})
}

type exchangeResponse struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"askedAt"`
}

type sessionResponse struct {
	VideoURL    string             `json:"videoUrl"`
	VideoID     string             `json:"videoId"`
	EmbedURL    string             `json:"embedUrl"`
	Offset      int                `json:"offset"`
	Autoplay    bool               `json:"autoplay"`
	AnalyzedURL string             `json:"analyzedUrl"`
	Analyzed    bool               `json:"analyzed"`
	Title       string             `json:"title"`
	QA          []exchangeResponse `json:"qa"`
}

func (h *Handler) APISession(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r).State()

	resp := sessionResponse{
		VideoURL:    st.VideoURL,
		VideoID:     st.VideoID,
		EmbedURL:    st.EmbedURL(),
		Offset:      st.Offset,
		Autoplay:    st.Autoplay,
		AnalyzedURL: st.AnalyzedURL,
		Analyzed:    st.Result != nil,
		QA:          make([]exchangeResponse, 0, len(st.QA)),
	}
	if st.Result != nil && st.Result.VideoInfo != nil {
		resp.Title = st.Result.VideoInfo.Title
	}
	for _, e := range st.QA {
		resp.QA = append(resp.QA, exchangeResponse{Question: e.Question, Answer: e.Answer, AskedAt: e.AskedAt})
	}

	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, resp)
}
